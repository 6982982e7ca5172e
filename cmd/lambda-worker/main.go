package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=amd64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-worker

import (
	"context"
	"log"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"audit-backend/internal/bootstrap"
	"audit-backend/internal/queue"
	"audit-backend/internal/shared/config"
	"audit-backend/internal/shared/metrics"
	"audit-backend/internal/shared/telemetry"
	"audit-backend/internal/workerproc"
)

var (
	initOnce sync.Once
	initErr  error
	app      *bootstrap.App
	requeue  queue.Client
)

func initApp() {
	cfg := config.Load()
	if cfg.SQSQueueURL != "" {
		client, err := queue.NewSQSClient(context.Background(), cfg.AWSRegion, cfg.SQSQueueURL)
		if err != nil {
			log.Printf("requeue disabled: %v", err)
		} else {
			requeue = client
		}
	}
	// Consumers deliver inline rather than re-enqueueing.
	cfg.SQSQueueURL = ""
	built, err := bootstrap.Build(cfg)
	if err != nil {
		initErr = err
		return
	}
	app = built
}

func handler(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		log.Printf("bootstrap error: %v", initErr)
		failures := make([]events.SQSBatchItemFailure, 0, len(event.Records))
		for _, record := range event.Records {
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
		return events.SQSEventResponse{BatchItemFailures: failures}, initErr
	}
	return processRecords(ctx, app.Dispatcher, requeue, event.Records), nil
}

// processRecords reports retryable failures only; unrecoverable messages are
// acknowledged so they leave the queue. A partial failure that is re-enqueued
// for the failed sinks is acknowledged too.
func processRecords(ctx context.Context, d workerproc.Deliverer, requeue queue.Client, records []events.SQSMessage) events.SQSEventResponse {
	failures := make([]events.SQSBatchItemFailure, 0)
	for _, record := range records {
		metrics.IncWorkerJobsReceived()
		err := workerproc.HandleMessage(ctx, d, record.Body)
		switch {
		case err == nil:
			metrics.IncWorkerJobsCompleted()
		case workerproc.Unrecoverable(err):
			metrics.IncWorkerJobsDeletedUnrecoverable()
			telemetry.Error("worker.event.unrecoverable", map[string]any{
				"sqs_message_id": record.MessageId,
				"error":          err.Error(),
			})
		default:
			metrics.IncWorkerJobsFailed()
			fields := map[string]any{
				"sqs_message_id": record.MessageId,
				"error":          err.Error(),
			}
			telemetry.Error("worker.event.failed", fields)
			if narrowed, ok := workerproc.Requeue(err); ok && requeue != nil {
				if sendErr := requeue.Send(ctx, narrowed); sendErr == nil {
					fields["sinks"] = narrowed.Sinks
					fields["attempt"] = narrowed.Attempt
					telemetry.Warn("worker.event.requeued", fields)
					continue
				}
			}
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
	}
	return events.SQSEventResponse{BatchItemFailures: failures}
}

func main() {
	lambda.Start(handler)
}
