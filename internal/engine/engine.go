package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leengari/minidb/internal/domain/schema"
	"github.com/leengari/minidb/internal/executor"
	"github.com/leengari/minidb/internal/parser"
	"github.com/leengari/minidb/internal/plan"
	"github.com/leengari/minidb/internal/planner"
	"github.com/leengari/minidb/internal/request"
)

// Engine executes structured requests against a catalog.
// Several engines may share one catalog; observers are per engine.
type Engine struct {
	catalog   *schema.Catalog
	observers []Observer // Observers for lifecycle events
}

// New creates a new Engine instance
func New(catalog *schema.Catalog) *Engine {
	return &Engine{
		catalog:   catalog,
		observers: make([]Observer, 0),
	}
}

// Catalog returns the catalog the engine executes against
func (e *Engine) Catalog() *schema.Catalog {
	return e.catalog
}

// ExecuteCommand parses one line of command text and executes it
func (e *Engine) ExecuteCommand(ctx context.Context, text string) (*Result, error) {
	requestID := uuid.NewString()

	e.notify(Event{Type: EventParseStart, RequestID: requestID, Data: text})
	req, err := parser.Parse(text)
	if err != nil {
		err = fmt.Errorf("parse error: %w", err)
		e.notify(Event{Type: EventParseError, RequestID: requestID, Err: err, Data: text})
		return nil, err
	}
	e.notify(Event{Type: EventParseEnd, RequestID: requestID, Kind: req.Kind(), Table: req.Table()})

	return e.execute(ctx, requestID, req)
}

// Execute runs one structured request.
// Core failures are returned unwrapped so callers can match them with errors.As.
func (e *Engine) Execute(ctx context.Context, req request.Request) (*Result, error) {
	return e.execute(ctx, uuid.NewString(), req)
}

func (e *Engine) execute(ctx context.Context, requestID string, req request.Request) (*Result, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	e.notify(Event{Type: EventExecStart, RequestID: requestID, Kind: req.Kind(), Table: req.Table()})

	result, err := e.dispatch(req)
	if err != nil {
		e.notify(Event{
			Type:      EventExecError,
			RequestID: requestID,
			Kind:      req.Kind(),
			Table:     req.Table(),
			Duration:  time.Since(start),
			Err:       err,
		})
		return nil, err
	}

	e.notify(Event{
		Type:      EventExecEnd,
		RequestID: requestID,
		Kind:      req.Kind(),
		Table:     req.Table(),
		Duration:  time.Since(start),
		Result:    result,
	})
	return result, nil
}

func (e *Engine) dispatch(req request.Request) (*Result, error) {
	switch r := req.(type) {
	case *request.CreateTable:
		return e.createTable(r)
	case *request.Insert:
		return e.insert(r)
	case *request.Select:
		return e.selectRows(r)
	case *request.ShowIndexes:
		return e.showIndexes(r)
	case *request.Explain:
		return e.explain(r)
	default:
		return nil, fmt.Errorf("unsupported request type: %T", req)
	}
}

func (e *Engine) createTable(r *request.CreateTable) (*Result, error) {
	if _, err := e.catalog.CreateTable(r.TableName, r.Columns); err != nil {
		return nil, err
	}
	return &Result{
		Kind:    r.Kind(),
		Table:   r.TableName,
		Message: fmt.Sprintf("Table %s has been created.", r.TableName),
	}, nil
}

func (e *Engine) insert(r *request.Insert) (*Result, error) {
	table, err := e.catalog.GetTable(r.TableName)
	if err != nil {
		return nil, err
	}

	rowID, err := table.InsertRow(r.Values)
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind:    r.Kind(),
		Table:   r.TableName,
		Message: fmt.Sprintf("1 row has been inserted into %s.", r.TableName),
		RowID:   &rowID,
	}, nil
}

func (e *Engine) selectRows(r *request.Select) (*Result, error) {
	table, err := e.catalog.GetTable(r.TableName)
	if err != nil {
		return nil, err
	}

	res, err := executor.Select(table, r.Predicate, r.SortKeys)
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind:     r.Kind(),
		Table:    r.TableName,
		Columns:  res.Columns,
		Rows:     res.Rows,
		ScanType: scanType(res.Plan),
	}, nil
}

func (e *Engine) showIndexes(r *request.ShowIndexes) (*Result, error) {
	table, err := e.catalog.GetTable(r.TableName)
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind:    r.Kind(),
		Table:   r.TableName,
		Indexes: table.ListIndexedColumns(),
	}, nil
}

func (e *Engine) explain(r *request.Explain) (*Result, error) {
	table, err := e.catalog.GetTable(r.Select.TableName)
	if err != nil {
		return nil, err
	}

	root, err := planner.Plan(table, r.Select.Predicate, r.Select.SortKeys)
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind:     r.Kind(),
		Table:    r.Select.TableName,
		Plan:     plan.PrintTree(root),
		ScanType: scanType(root),
	}, nil
}

// scanType reports the scan_type recorded on the plan's leaf node
func scanType(root plan.Node) string {
	var found string
	_ = plan.WalkTree(root, func(n plan.Node) error {
		if st, ok := n.Metadata()["scan_type"].(string); ok {
			found = st
		}
		return nil
	})
	return found
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}
