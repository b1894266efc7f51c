package actions

import (
	"github.com/mj1618/desktop-pilot/internal/capture"
	"github.com/mj1618/desktop-pilot/internal/model"
)

// Result is the uniform outcome of every tool operation.
type Result struct {
	Success   bool                 `yaml:"success"              json:"success"`
	Error     string               `yaml:"error,omitempty"      json:"error,omitempty"`
	ErrorKind model.ErrorKind      `yaml:"error_kind,omitempty" json:"errorKind,omitempty"`
	Data      map[string]any       `yaml:"data,omitempty"       json:"data,omitempty"`
	Image     *capture.ImageResult `yaml:"image,omitempty"      json:"image,omitempty"`
	Batch     *BatchResult         `yaml:"batch,omitempty"      json:"batch,omitempty"`
}

// Failure converts err into a failed Result.
func Failure(err error) Result {
	return Result{Success: false, Error: err.Error(), ErrorKind: model.KindOf(err)}
}

// StepOutcome is one step's entry in a batch result.
type StepOutcome struct {
	Index     int             `yaml:"index"                json:"index"`
	Kind      string          `yaml:"kind"                 json:"kind"`
	Success   bool            `yaml:"success"              json:"success"`
	Error     string          `yaml:"error,omitempty"      json:"error,omitempty"`
	ErrorKind model.ErrorKind `yaml:"error_kind,omitempty" json:"errorKind,omitempty"`
	Data      map[string]any  `yaml:"data,omitempty"       json:"data,omitempty"`
}

// BatchResult is the outcome of multiple_desktop_actions.
type BatchResult struct {
	Results        []StepOutcome `yaml:"results"          json:"results"`
	OverallSuccess bool          `yaml:"overall_success"  json:"overallSuccess"`
	Errors         []string      `yaml:"errors,omitempty" json:"errors,omitempty"`
}
