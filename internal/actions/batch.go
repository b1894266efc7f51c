package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/logger"
	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

// Step is one entry of a batch.
type Step struct {
	Kind         string `yaml:"kind"                   json:"kind"`
	Params       Params `yaml:"params,omitempty"       json:"params,omitempty"`
	DelayAfterMs int    `yaml:"delayAfterMs,omitempty" json:"delayAfterMs,omitempty"`

	// invalid holds a decode problem reported when the step runs.
	invalid error
}

// ParseSteps decodes a list of {kind, params, delayAfterMs} objects. A
// malformed entry becomes a step that fails when run.
func ParseSteps(raw any) ([]Step, error) {
	switch v := raw.(type) {
	case []Step:
		return v, nil
	case []any:
		steps := make([]Step, len(v))
		for i, item := range v {
			steps[i] = parseStep(item)
		}
		return steps, nil
	case []map[string]any:
		steps := make([]Step, len(v))
		for i, item := range v {
			steps[i] = parseStep(item)
		}
		return steps, nil
	case nil:
		return nil, invalid("actions is required")
	}
	return nil, invalid("actions must be a list, got %T", raw)
}

func parseStep(item any) Step {
	m, ok := asParams(item)
	if !ok {
		return Step{invalid: invalid("step must be an object, got %T", item)}
	}
	step := Step{Kind: stringParam(m, "kind", "")}
	if raw, present := m["params"]; present {
		p, ok := asParams(raw)
		if !ok {
			step.invalid = invalid("params must be an object, got %T", raw)
			return step
		}
		step.Params = p
	}
	delay, err := rangeParam(m, "delayAfterMs", 0, 0, MaxDelayAfterMs)
	if err != nil {
		step.invalid = err
		return step
	}
	step.DelayAfterMs = delay
	return step
}

func (o *Orchestrator) batch(ctx context.Context, p Params) (Result, error) {
	steps, err := ParseSteps(p["actions"])
	if err != nil {
		return Result{}, err
	}
	if len(steps) == 0 {
		return Result{}, invalid("actions must contain at least one step")
	}
	br, err := o.RunBatch(ctx, steps, boolParam(p, "continueOnError", false))
	res := Result{Success: br.OverallSuccess, Batch: &br}
	if err != nil {
		res.Error = err.Error()
		res.ErrorKind = model.KindStepFailed
	}
	return res, nil
}

// RunBatch executes steps strictly in order. Without continueOnError the
// first failure stops the batch; otherwise failures are recorded and the
// remaining steps still run. The returned error aggregates every failure.
func (o *Orchestrator) RunBatch(ctx context.Context, steps []Step, continueOnError bool) (BatchResult, error) {
	log := logger.FromContext(ctx)
	out := BatchResult{Results: make([]StepOutcome, 0, len(steps))}
	var errs error

	for i, step := range steps {
		index := i + 1
		res := o.runStep(ctx, step)
		outcome := StepOutcome{
			Index:     index,
			Kind:      step.Kind,
			Success:   res.Success,
			Error:     res.Error,
			ErrorKind: res.ErrorKind,
			Data:      res.Data,
		}
		if res.Image != nil {
			if outcome.Data == nil {
				outcome.Data = map[string]any{}
			}
			outcome.Data["summary"] = res.Image.Summary
		}
		out.Results = append(out.Results, outcome)

		if !res.Success {
			kind := step.Kind
			if kind == "" {
				kind = "missing kind"
			}
			stepErr := model.StepFailed(index, kind, errors.New(res.Error))
			errs = multierr.Append(errs, stepErr)
			out.Errors = append(out.Errors, stepErr.Error())
			log.Warn("batch step failed", zap.Int("index", index), zap.String("kind", step.Kind), zap.String("error", res.Error))
			if !continueOnError {
				break
			}
		}

		if step.DelayAfterMs > 0 && i < len(steps)-1 {
			if err := platform.Sleep(ctx, time.Duration(step.DelayAfterMs)*time.Millisecond); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("batch interrupted after step %d: %w", index, err))
				out.Errors = append(out.Errors, err.Error())
				break
			}
		}
	}

	out.OverallSuccess = errs == nil
	return out, errs
}

func (o *Orchestrator) runStep(ctx context.Context, step Step) Result {
	switch {
	case step.invalid != nil:
		return Failure(step.invalid)
	case step.Kind == "":
		return Failure(invalid("step is missing kind"))
	case step.Kind == KindBatch:
		return Failure(invalid("%s cannot be nested", KindBatch))
	}
	if step.DelayAfterMs < 0 || step.DelayAfterMs > MaxDelayAfterMs {
		return Failure(invalid("delayAfterMs must be between 0 and %d, got %d", MaxDelayAfterMs, step.DelayAfterMs))
	}
	return o.Execute(ctx, step.Kind, step.Params)
}
