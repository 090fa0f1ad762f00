// Command lambda is the AWS Lambda entry point for the daily digest. The
// scheduled event payload is ignored.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"

	"dailyfeed/app"
	"dailyfeed/config"
	"dailyfeed/logger"
	"dailyfeed/orchestrator"
)

// handler wires the job per invocation so configuration changes and the daily
// log file follow the clock. Setup failures are reported as a 500 response
// like any other run failure.
func handler(ctx context.Context, _ json.RawMessage) (orchestrator.Response, error) {
	cfg, err := config.Load()
	if err != nil {
		return setupFailure(nil, err), nil
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return setupFailure(cfg, err), nil
	}
	defer a.Close()

	resp := a.Orchestrator.Run(ctx)
	return lambdaResponse(resp), nil
}

// setupFailure logs err to stdout, where the Lambda runtime collects it, and
// returns the error response.
func setupFailure(cfg *config.Config, err error) orchestrator.Response {
	level := logger.DefaultLevel
	if cfg != nil && cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	log, logErr := logger.New(logger.Config{Level: level})
	if logErr != nil {
		log = logger.NewNop()
	}
	defer func() { _ = log.Sync() }()

	log.Error("Daily Feed Summary setup failed", logger.Error(err))
	return lambdaResponse(orchestrator.Response{
		StatusCode: http.StatusInternalServerError,
		Body:       fmt.Sprintf("Error: %v", err),
	})
}

// lambdaResponse encodes the body as a JSON string.
func lambdaResponse(resp orchestrator.Response) orchestrator.Response {
	body, err := json.Marshal(resp.Body)
	if err != nil {
		return resp
	}
	return orchestrator.Response{StatusCode: resp.StatusCode, Body: string(body)}
}

func main() {
	lambda.Start(handler)
}
