// Package hook runs user-supplied Tengo scripts at the pipeline's extension
// points: after a successful download, and as extra dataset checks during
// validation. A script signals failure by assigning a non-empty string or an
// error to the variable `err`.
package hook

import (
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/glorpus-work/dataprep/pkg/errors"
)

// Type identifies an extension point.
type Type string

// Extension points.
const (
	// PostDownload runs after the manifest has been written.
	PostDownload Type = "post-download"
	// CustomCheck runs as an extra dataset-level check during validation.
	CustomCheck Type = "custom-check"
)

// Executor handles the execution of Tengo scripts.
type Executor struct {
	scripts map[Type]string
	mutex   sync.RWMutex
}

// NewExecutor creates a new Tengo script executor.
func NewExecutor() *Executor {
	return &Executor{
		scripts: make(map[Type]string),
	}
}

// Execute runs the script registered for the given extension point with the
// given variables. Missing scripts are a no-op.
func (e *Executor) Execute(hookType Type, vars map[string]interface{}) error {
	e.mutex.RLock()
	script, exists := e.scripts[hookType]
	e.mutex.RUnlock()

	if !exists {
		return nil
	}
	return Run(script, vars)
}

// AddScript adds or updates a script for the specified extension point.
func (e *Executor) AddScript(hookType Type, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hookType] = script
}

// HasScript checks if a script exists for the specified extension point.
func (e *Executor) HasScript(hookType Type) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}

// Run executes a single Tengo script with the given variables bound, honoring
// the `err` convention.
func Run(script string, vars map[string]interface{}) error {
	scriptInstance := tengo.NewScript([]byte(script))

	modules := stdlib.GetModuleMap("fmt", "math", "text", "times")
	scriptInstance.SetImports(modules)

	for k, v := range vars {
		_ = scriptInstance.Add(k, v)
	}

	compiled, err := scriptInstance.Run()
	if err != nil {
		return errors.Wrap(errors.ErrHookExecution, err.Error())
	}

	errVar := compiled.Get("err")
	if errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return errors.Wrap(errors.ErrHookScript, v.Error())
		case string:
			if v != "" {
				return errors.Wrap(errors.ErrHookScript, v)
			}
		}
	}

	return nil
}
