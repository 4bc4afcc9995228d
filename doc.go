// dynamo emits synthetic log traffic at a specified pace. It is meant for
// exercising log pipelines: point it at anything that speaks the Datadog
// agent log intake (POST /api/v2/logs) and it will keep a steady,
// configurable stream of records flowing.
//
// It is not a fuzzer. The outputs are deliberately specific so that a
// pipeline operator has something recognizable to react to:
//
//   - HTTP access logs from a sample e-commerce store ("storedog"),
//     including a low-rate data leak of customer credit card numbers; and
//   - VPC flow logs, including the signature of an SSH brute-force attack.
//
// Each record category runs on its own goroutine behind its own token
// bucket, so rates are independent: --http-rate, --http-error-rate,
// --http-leak-rate, --flow-rate, and --flow-attack-rate each take a
// records-per-second target, with 0 disabling the category entirely.
//
// All categories feed one small bounded queue. A single consumer groups
// records into batches of --batch-size, holding a partial batch no longer
// than --batch-timeout, and delivers each batch as a gzip-compressed JSON
// array in a single POST. Delivery is fire and forget: a failed batch is
// logged and dropped, and generation continues. The bounded queue is the
// only backpressure, so a slow collector throttles every category evenly
// instead of dropping records.
//
// cmd/logsink is a matching test collector that counts what it receives and
// reports records per second, for checking dynamo's delivery end to end
// without a real pipeline.
package main
