package events

// PoisonQueueV1 receives messages whose handler kept failing after retries.
const PoisonQueueV1 = "scoreline.poison.v1"
