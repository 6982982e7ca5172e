package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"audit-backend/internal/bootstrap"
	"audit-backend/internal/queue"
	"audit-backend/internal/shared/config"
	"audit-backend/internal/shared/metrics"
	"audit-backend/internal/shared/telemetry"
	"audit-backend/internal/workerproc"
)

const (
	defaultRegion             = "us-east-1"
	defaultVisibilitySeconds  = 120
	defaultWorkerConcurrency  = 4
	defaultShutdownTimeoutSec = 30
)

func main() {
	cfg := config.Load()

	queueURL := strings.TrimSpace(cfg.SQSQueueURL)
	if queueURL == "" {
		log.Fatal("AUDIT_SQS_QUEUE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	visibilitySeconds := envInt("SQS_VISIBILITY_TIMEOUT_SECONDS", defaultVisibilitySeconds)
	concurrency := envInt("WORKER_CONCURRENCY", defaultWorkerConcurrency)
	shutdownTimeout := time.Duration(envInt("SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownTimeoutSec)) * time.Second

	region := cfg.AWSRegion
	if region == "" {
		region = defaultRegion
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}
	var sqsClient sqsAPI = sqs.NewFromConfig(awsCfg)

	// The worker delivers inline; it must not re-enqueue what it consumes.
	cfg.SQSQueueURL = ""
	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	requeue := queue.NewSQSClientWith(sqsClient, queueURL)

	sem := make(chan struct{}, max(1, concurrency))
	var wg sync.WaitGroup

	log.Printf("worker started queue=%s concurrency=%d visibility=%ds sinks=%v", queueURL, concurrency, visibilitySeconds, app.Dispatcher.SinkNames())

pollLoop:
	for {
		select {
		case <-ctx.Done():
			break pollLoop
		default:
		}

		resp, err := sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
			VisibilityTimeout:   int32(visibilitySeconds),
			AttributeNames:      []sqstypes.QueueAttributeName{sqstypes.QueueAttributeName("ApproximateReceiveCount")},
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				break pollLoop
			}
			log.Printf("receive message: %v", err)
			continue
		}

		for _, msg := range resp.Messages {
			select {
			case <-ctx.Done():
				break pollLoop
			case sem <- struct{}{}:
			}
			metrics.IncWorkerJobsReceived()
			wg.Add(1)
			go func(m sqstypes.Message) {
				defer wg.Done()
				defer func() { <-sem }()
				handleMessage(ctx, sqsClient, queueURL, app.Dispatcher, requeue, m)
			}(msg)
		}
	}

	log.Printf("shutdown requested, waiting up to %s for in-flight jobs", shutdownTimeout)
	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(shutdownTimeout):
		log.Printf("shutdown timeout reached; exiting with in-flight jobs")
	}
}

type sqsAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// handleMessage delivers one queue message. When only some sinks fail, a copy
// addressed to those sinks is re-enqueued and the original is deleted.
func handleMessage(ctx context.Context, client sqsAPI, queueURL string, d workerproc.Deliverer, requeue queue.Client, msg sqstypes.Message) {
	body := aws.ToString(msg.Body)

	decoded, meta, err := workerproc.ParseMessage(body)
	if err != nil {
		fields := baseFields(msg, decoded.Event.ID, decoded.RequestID)
		fields["body_len"] = meta.BodyLen
		if meta.BodySHA != "" {
			fields["body_sha256"] = meta.BodySHA
		}
		fields["error"] = err.Error()
		telemetry.Error(parseFailureEvent(err), fields)
		if deleteMessage(ctx, client, queueURL, msg, decoded.Event.ID, decoded.RequestID) {
			metrics.IncWorkerJobsDeletedUnrecoverable()
		}
		return
	}

	fields := baseFields(msg, decoded.Event.ID, decoded.RequestID)
	fields["event_kind"] = string(decoded.Event.Kind)
	telemetry.Info("worker.event.received", fields)

	ctxWithParsed := workerproc.WithParsedMessage(ctx, decoded)
	if err := workerproc.HandleMessage(ctxWithParsed, d, body); err != nil {
		failed := baseFields(msg, decoded.Event.ID, decoded.RequestID)
		failed["event_kind"] = string(decoded.Event.Kind)
		failed["error"] = err.Error()
		telemetry.Error("worker.event.failed", failed)
		metrics.IncWorkerJobsFailed()

		narrowed, ok := workerproc.Requeue(err)
		if !ok || requeue == nil {
			return
		}
		if sendErr := requeue.Send(ctx, narrowed); sendErr != nil {
			failed["error"] = sendErr.Error()
			telemetry.Error("worker.event.requeue_failed", failed)
			return
		}
		if deleteMessage(ctx, client, queueURL, msg, decoded.Event.ID, decoded.RequestID) {
			requeued := baseFields(msg, decoded.Event.ID, decoded.RequestID)
			requeued["sinks"] = narrowed.Sinks
			requeued["attempt"] = narrowed.Attempt
			telemetry.Warn("worker.event.requeued", requeued)
		}
		return
	}

	if deleteMessage(ctx, client, queueURL, msg, decoded.Event.ID, decoded.RequestID) {
		telemetry.Info("worker.event.completed", fields)
		metrics.IncWorkerJobsCompleted()
	}
}

func parseFailureEvent(err error) string {
	switch err.(type) {
	case workerproc.ErrEmptyBody:
		return "worker.event.empty_body"
	case workerproc.ErrMissingEventID:
		return "worker.event.missing_id"
	case workerproc.ErrUnsupportedKind:
		return "worker.event.unsupported_kind"
	default:
		return "worker.event.decode_failed"
	}
}

func deleteMessage(ctx context.Context, client sqsAPI, queueURL string, msg sqstypes.Message, eventID, requestID string) bool {
	receipt := aws.ToString(msg.ReceiptHandle)
	if receipt == "" {
		fields := baseFields(msg, eventID, requestID)
		fields["error"] = "missing receipt handle"
		telemetry.Error("worker.event.delete_failed", fields)
		return false
	}
	if _, err := client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: aws.String(receipt),
	}); err != nil {
		fields := baseFields(msg, eventID, requestID)
		fields["error"] = err.Error()
		telemetry.Error("worker.event.delete_failed", fields)
		return false
	}
	return true
}

func baseFields(msg sqstypes.Message, eventID, requestID string) map[string]any {
	fields := map[string]any{
		"event_id":       eventID,
		"sqs_message_id": aws.ToString(msg.MessageId),
		"receive_count":  receiveCount(msg),
	}
	if strings.TrimSpace(requestID) != "" {
		fields["request_id"] = requestID
	}
	return fields
}

func receiveCount(msg sqstypes.Message) int {
	raw := msg.Attributes["ApproximateReceiveCount"]
	if raw == "" {
		return 0
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return parsed
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
