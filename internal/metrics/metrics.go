package metrics

const Namespace = "taskhub"
