package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mohammad-safakhou/newsagent/internal/agent/telemetry"
	"github.com/mohammad-safakhou/newsagent/internal/logging"
	"github.com/mohammad-safakhou/newsagent/models"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	DefaultCompositeCount = 3
	DefaultFetchCount     = 5
)

type handler func(ctx context.Context, args []byte) (string, error)

type entry struct {
	desc    models.ToolDescriptor
	schema  *jsonschema.Schema
	handler handler
}

// Registry keeps the mapping between tool names and implementations.
type Registry struct {
	tools     map[Name]entry
	telemetry *telemetry.Telemetry
	logger    *slog.Logger
}

type Option func(*Registry)

func WithTelemetry(t *telemetry.Telemetry) Option { return func(r *Registry) { r.telemetry = t } }

func WithLogger(l *slog.Logger) Option { return func(r *Registry) { r.logger = l } }

// NewRegistry compiles every tool schema and binds the handlers to svc.
func NewRegistry(svc NewsService, opts ...Option) (*Registry, error) {
	r := &Registry{tools: make(map[Name]entry, len(Names))}
	for _, o := range opts {
		o(r)
	}
	r.logger = logging.OrDefault(r.logger).With("component", "tools")

	handlers := map[Name]handler{
		GetNewsWithSummary: func(ctx context.Context, args []byte) (string, error) {
			var in NewsInput
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			return svc.NewsWithSummary(ctx, in.Topic, in.CountOr(DefaultCompositeCount)), nil
		},
		FetchNews: func(ctx context.Context, args []byte) (string, error) {
			var in NewsInput
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			return svc.FetchNews(ctx, in.Topic, in.CountOr(DefaultFetchCount)), nil
		},
		SummarizeNews: func(ctx context.Context, args []byte) (string, error) {
			var in SummarizeInput
			if err := json.Unmarshal(args, &in); err != nil {
				return "", err
			}
			return svc.Summarize(ctx, in.Articles), nil
		},
	}

	for _, name := range Names {
		desc := descriptor(name)
		schema, err := compile(desc)
		if err != nil {
			return nil, err
		}
		r.tools[name] = entry{desc: desc, schema: schema, handler: handlers[name]}
	}
	return r, nil
}

func compile(desc models.ToolDescriptor) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(desc.Parameters)
	if err != nil {
		return nil, fmt.Errorf("marshal %s schema: %w", desc.Name, err)
	}
	res := desc.Name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(res, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(res)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", desc.Name, err)
	}
	return schema, nil
}

// Descriptors returns the advertised tools in a fixed order.
func (r *Registry) Descriptors() []models.ToolDescriptor {
	out := make([]models.ToolDescriptor, 0, len(Names))
	for _, n := range Names {
		out = append(out, r.tools[n].desc)
	}
	return out
}

// Dispatch validates the call's arguments and runs the named tool.
func (r *Registry) Dispatch(ctx context.Context, call models.ToolCall) (string, error) {
	start := time.Now()
	out, err := r.dispatch(ctx, call)
	r.telemetry.RecordToolDispatch(call.Name, time.Since(start), err)
	if err != nil {
		r.logger.Warn("tool dispatch failed", "tool", call.Name, "call_id", call.ID, "error", err)
		return "", err
	}
	r.logger.Info("tool dispatched", "tool", call.Name, "call_id", call.ID, "duration", time.Since(start))
	return out, nil
}

func (r *Registry) dispatch(ctx context.Context, call models.ToolCall) (string, error) {
	name, err := ParseName(call.Name)
	if err != nil {
		return "", err
	}
	t := r.tools[name]

	args := []byte(strings.TrimSpace(call.Arguments))
	if len(args) == 0 {
		args = []byte("{}")
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(args))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidArguments, name, err)
	}
	if err := t.schema.Validate(doc); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidArguments, name, err)
	}
	out, err := t.handler(ctx, args)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidArguments, name, err)
	}
	return out, nil
}
