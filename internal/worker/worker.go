package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aescanero/dago-node-langjson/internal/config"
	"github.com/aescanero/dago-node-langjson/internal/eval/template"
	"github.com/aescanero/dago-node-langjson/internal/store"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Request operations
const (
	OpRender   = "render"
	OpRegister = "register"
)

// Error codes published on the error stream
const (
	CodeInvalidRequest   = "invalid_request"
	CodeMissingHelper    = "missing_helper"
	CodeTemplateNotFound = "template_not_found"
	CodeRenderFailed     = "render_failed"
	CodeRegisterFailed   = "register_failed"
)

// errorStreamSuffix is appended to the result stream for error events
const errorStreamSuffix = ".errors"

// Worker represents the template worker
type Worker struct {
	id            string
	config        *config.Config
	redisClient   *redis.Client
	engine        *template.Engine
	templates     store.TemplateStore
	validate      *validator.Validate
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	streamKey     string
	consumerGroup string
	resultStream  string
}

// NewWorker creates a new worker
func NewWorker(
	cfg *config.Config,
	redisClient *redis.Client,
	engine *template.Engine,
	templates store.TemplateStore,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		id:            cfg.WorkerID,
		config:        cfg,
		redisClient:   redisClient,
		engine:        engine,
		templates:     templates,
		validate:      validator.New(),
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		streamKey:     cfg.StreamKey,
		consumerGroup: cfg.ConsumerGroup,
		resultStream:  cfg.ResultStream,
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting template worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
	)

	// Create consumer group if it doesn't exist
	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	w.wg.Add(1)
	go w.processWork()

	w.logger.Info("template worker started", zap.String("worker_id", w.id))
	return nil
}

// Stop stops the worker and waits for the in-flight request to finish
func (w *Worker) Stop() error {
	w.logger.Info("stopping template worker", zap.String("worker_id", w.id))

	w.cancel()
	w.wg.Wait()

	w.logger.Info("template worker stopped", zap.String("worker_id", w.id))
	return nil
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		// BUSYGROUP means the group already exists
		if strings.Contains(err.Error(), "BUSYGROUP") {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// processWork processes work from the Redis stream
func (w *Worker) processWork() {
	defer w.wg.Done()
	w.logger.Info("starting work processing loop")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("work processing loop stopped")
			return
		default:
			streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
				Group:    w.consumerGroup,
				Consumer: w.id,
				Streams:  []string{w.streamKey, ">"},
				Count:    1,
				Block:    w.config.BlockTime,
			}).Result()

			if err != nil {
				if errors.Is(err, redis.Nil) || w.ctx.Err() != nil {
					continue
				}
				w.logger.Error("failed to read from stream", zap.Error(err))
				w.sleep(time.Second)
				continue
			}

			for _, stream := range streams {
				for _, message := range stream.Messages {
					w.handleMessage(message)
				}
			}
		}
	}
}

// sleep waits for d or until the worker is stopped
func (w *Worker) sleep(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-w.ctx.Done():
	}
}

// Request is a unit of work read from the stream
type Request struct {
	RequestID    string      `mapstructure:"request_id" validate:"required"`
	Op           string      `mapstructure:"op" validate:"omitempty,oneof=render register"`
	Template     interface{} `mapstructure:"template" validate:"required_if=Op register"`
	TemplateName string      `mapstructure:"template_name" validate:"required_without=Template,required_if=Op register"`
	Data         interface{} `mapstructure:"data"`
	TTLSeconds   int         `mapstructure:"ttl_seconds" validate:"gte=0"`
}

// handleMessage handles a single stream message. Messages are acknowledged
// whatever the outcome.
func (w *Worker) handleMessage(message redis.XMessage) {
	messageID := message.ID
	defer w.acknowledgeMessage(messageID)

	var requestID string
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("panic while processing request",
				zap.String("message_id", messageID),
				zap.String("request_id", requestID),
				zap.Any("panic", r),
			)
			w.publishError(messageID, requestID, CodeRenderFailed, fmt.Errorf("panic: %v", r))
		}
	}()

	request, err := w.parseRequest(message.Values)
	if err != nil {
		w.logger.Error("failed to parse request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.publishError(messageID, "", CodeInvalidRequest, err)
		return
	}
	requestID = request.RequestID

	w.logger.Info("processing request",
		zap.String("message_id", messageID),
		zap.String("request_id", requestID),
		zap.String("op", request.Op),
	)

	if err := w.process(request); err != nil {
		w.logger.Error("failed to process request",
			zap.String("message_id", messageID),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		w.publishError(messageID, requestID, errorCode(err), err)
	}
}

// parseRequest decodes and validates the request carried in the message's
// data field
func (w *Worker) parseRequest(values map[string]interface{}) (*Request, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(dataStr), &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request: %w", err)
	}

	var request Request
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &request,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}

	if request.Op == "" {
		request.Op = OpRender
	}

	if err := w.validate.Struct(&request); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	return &request, nil
}

// process runs a validated request
func (w *Worker) process(request *Request) error {
	ctx, cancel := context.WithTimeout(w.ctx, w.config.RenderTimeout)
	defer cancel()

	switch request.Op {
	case OpRegister:
		return w.register(ctx, request)
	default:
		return w.render(ctx, request)
	}
}

// render applies the inline or stored template to the request data and
// publishes the result
func (w *Worker) render(ctx context.Context, request *Request) error {
	start := time.Now()

	tmpl := request.Template
	if tmpl == nil {
		loaded, err := w.templates.Load(ctx, request.TemplateName)
		if err != nil {
			return err
		}
		tmpl = loaded
	}

	result, err := w.engine.ApplyTemplate(ctx, tmpl, request.Data)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return w.publish(w.resultStream, map[string]interface{}{
		"request_id":  request.RequestID,
		"result":      result,
		"duration_ms": time.Since(start).Milliseconds(),
		"timestamp":   time.Now().UTC(),
	})
}

// register stores the request template under its name
func (w *Worker) register(ctx context.Context, request *Request) error {
	if err := w.templates.Save(ctx, request.TemplateName, request.Template); err != nil {
		return &registerError{err: err}
	}
	if request.TTLSeconds > 0 {
		ttl := time.Duration(request.TTLSeconds) * time.Second
		if err := w.templates.SetTTL(ctx, request.TemplateName, ttl); err != nil {
			return &registerError{err: err}
		}
	}

	w.logger.Info("registered template",
		zap.String("request_id", request.RequestID),
		zap.String("template_name", request.TemplateName),
	)

	return w.publish(w.resultStream, map[string]interface{}{
		"request_id":    request.RequestID,
		"op":            OpRegister,
		"template_name": request.TemplateName,
		"timestamp":     time.Now().UTC(),
	})
}

type registerError struct {
	err error
}

func (e *registerError) Error() string {
	return fmt.Sprintf("register failed: %v", e.err)
}

func (e *registerError) Unwrap() error {
	return e.err
}

// errorCode maps a processing error to its published code
func errorCode(err error) string {
	var regErr *registerError
	switch {
	case errors.Is(err, store.ErrTemplateNotFound):
		return CodeTemplateNotFound
	case errors.Is(err, template.ErrMissingHelper):
		return CodeMissingHelper
	case errors.As(err, &regErr):
		return CodeRegisterFailed
	default:
		return CodeRenderFailed
	}
}

// publish adds a JSON encoded event to stream
func (w *Worker) publish(stream string, event map[string]interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Publishing uses a fresh context so results survive a stop in progress
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = w.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}
	return nil
}

// publishError publishes an error event
func (w *Worker) publishError(messageID, requestID, code string, err error) {
	errorEvent := map[string]interface{}{
		"message_id": messageID,
		"request_id": requestID,
		"error":      err.Error(),
		"code":       code,
		"timestamp":  time.Now().UTC(),
	}

	if publishErr := w.publish(w.resultStream+errorStreamSuffix, errorEvent); publishErr != nil {
		w.logger.Error("failed to publish error event", zap.Error(publishErr))
	}
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(messageID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := w.redisClient.XAck(ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
