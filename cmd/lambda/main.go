// Package main is the entry point for the dictionary lookup Lambda function.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/pricofy/dictionary-lookup/internal/config"
	"github.com/pricofy/dictionary-lookup/internal/dispatcher"
	"github.com/pricofy/dictionary-lookup/internal/domain"
	"github.com/pricofy/dictionary-lookup/internal/handler"
	"github.com/pricofy/dictionary-lookup/internal/logger"
)

type app struct {
	handler      *handler.Handler
	log          *slog.Logger
	functionName string
	newInvoker   func(ctx context.Context) (invoker, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	d, err := dispatcher.New(cfg.Linguee, log)
	if err != nil {
		log.Error("create dispatcher", slog.String("error", err.Error()))
		os.Exit(1)
	}

	a := &app{
		handler:      handler.New(d, log),
		log:          log,
		functionName: cfg.Warmup.FunctionName,
		newInvoker:   newLambdaInvoker,
	}

	lambda.Start(a.handleRequest)
}

func (a *app) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup detection (MUST be first - before any other processing)
	if warmup, ok := IsWarmupEvent(event); ok {
		return a.HandleWarmup(ctx, warmup)
	}

	var req domain.Request
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, err
	}

	if lc, ok := lambdacontext.FromContext(ctx); ok {
		a.log.DebugContext(ctx, "lookup request",
			slog.String("aws_request_id", lc.AwsRequestID),
			slog.String("query", req.Query),
		)
	}

	return a.handler.Handle(ctx, req)
}
