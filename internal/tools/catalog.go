package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/availops/availagent/internal/sla"
	"github.com/availops/availagent/internal/store"
)

// ErrUnknownTool is returned when a requested tool name is not in the catalog.
var ErrUnknownTool = errors.New("unknown tool")

// Catalog dispatches tool invocations against the warehouse and the
// availability engine. Every handler returns a JSON document, never prose,
// so results stay machine-readable inside the conversation.
type Catalog struct {
	store *store.Store
	calc  *sla.Calculator
	now   func() time.Time
}

// NewCatalog creates a Catalog over the given store.
func NewCatalog(st *store.Store) *Catalog {
	return &Catalog{
		store: st,
		calc:  sla.NewCalculator(st),
		now:   time.Now,
	}
}

type rangeArgs struct {
	ServiceID string `json:"service_id"`
	DateFrom  string `json:"date_from"`
	DateTo    string `json:"date_to"`
}

type listArgs struct {
	Filter string `json:"filter"`
}

// Execute runs the named tool with the given JSON arguments and returns its
// structured result. Domain failures (unknown service, malformed range, bad
// arguments) come back as a JSON error payload with a nil error so the
// reasoning model can adapt; a non-nil error means either an undeclared tool
// name (ErrUnknownTool) or a repository-level failure that should abort the
// whole request.
func (c *Catalog) Execute(ctx context.Context, name string, arguments string) (string, error) {
	switch name {
	case ToolListServices:
		return c.listServices(ctx, arguments)
	case ToolGetPromise:
		return c.getPromise(ctx, arguments)
	case ToolGetDowntime:
		return c.getDowntime(ctx, arguments)
	case ToolComputeAvailability:
		return c.computeAvailability(ctx, arguments)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
}

func (c *Catalog) listServices(ctx context.Context, arguments string) (string, error) {
	var args listArgs
	if msg, ok := parseArgs(arguments, &args); !ok {
		return msg, nil
	}

	services, err := c.store.ListServices(ctx, args.Filter)
	if err != nil {
		return "", err
	}

	return marshal(map[string]any{
		"count":    len(services),
		"services": services,
	})
}

func (c *Catalog) getPromise(ctx context.Context, arguments string) (string, error) {
	args, errPayload, err := c.resolveRange(ctx, arguments)
	if err != nil || errPayload != "" {
		return errPayload, err
	}

	entries, err := c.store.PromisesInRange(ctx, args.ServiceID, args.DateFrom, args.DateTo)
	if err != nil {
		return "", err
	}

	total := 0
	for _, e := range entries {
		total += e.PromisedMinutes
	}

	return marshal(map[string]any{
		"service_id":             args.ServiceID,
		"from":                   args.DateFrom,
		"to":                     args.DateTo,
		"count":                  len(entries),
		"total_promised_minutes": total,
		"entries":                entries,
	})
}

func (c *Catalog) getDowntime(ctx context.Context, arguments string) (string, error) {
	args, errPayload, err := c.resolveRange(ctx, arguments)
	if err != nil || errPayload != "" {
		return errPayload, err
	}

	events, err := c.store.DowntimeInRange(ctx, args.ServiceID, args.DateFrom, args.DateTo)
	if err != nil {
		return "", err
	}

	total := 0
	for _, ev := range events {
		total += ev.Minutes
	}

	return marshal(map[string]any{
		"service_id":             args.ServiceID,
		"from":                   args.DateFrom,
		"to":                     args.DateTo,
		"count":                  len(events),
		"total_reported_minutes": total,
		"events":                 events,
	})
}

func (c *Catalog) computeAvailability(ctx context.Context, arguments string) (string, error) {
	var args rangeArgs
	if msg, ok := parseArgs(arguments, &args); !ok {
		return msg, nil
	}
	c.applyDefaults(&args)

	result, err := c.calc.Compute(ctx, args.ServiceID, args.DateFrom, args.DateTo)
	switch {
	case errors.Is(err, store.ErrServiceNotFound):
		return errorPayload("not_found", err.Error()), nil
	case errors.Is(err, sla.ErrInvalidRange):
		return errorPayload("invalid_range", err.Error()), nil
	case err != nil:
		return "", err
	}

	return marshal(map[string]any{
		"result": result,
		"status": sla.StatusFor(result.AvailabilityPct),
	})
}

// resolveRange parses range arguments, applies date defaults and verifies
// the service exists. It returns either a validated argument set, a JSON
// error payload for the model, or a hard repository error.
func (c *Catalog) resolveRange(ctx context.Context, arguments string) (rangeArgs, string, error) {
	var args rangeArgs
	if msg, ok := parseArgs(arguments, &args); !ok {
		return args, msg, nil
	}
	c.applyDefaults(&args)

	from, err := sla.ParseDay(args.DateFrom)
	if err != nil {
		return args, errorPayload("invalid_range", err.Error()), nil
	}
	to, err := sla.ParseDay(args.DateTo)
	if err != nil {
		return args, errorPayload("invalid_range", err.Error()), nil
	}
	if from.After(to) {
		return args, errorPayload("invalid_range",
			fmt.Sprintf("date_from %s is after date_to %s", args.DateFrom, args.DateTo)), nil
	}

	if _, err := c.store.GetService(ctx, args.ServiceID); err != nil {
		if errors.Is(err, store.ErrServiceNotFound) {
			return args, errorPayload("not_found", err.Error()), nil
		}
		return args, "", err
	}

	return args, "", nil
}

// applyDefaults fills an omitted date range with January 1 of the current
// year through today.
func (c *Catalog) applyDefaults(args *rangeArgs) {
	today := c.now().UTC()
	if args.DateFrom == "" {
		args.DateFrom = time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}
	if args.DateTo == "" {
		args.DateTo = today.Format("2006-01-02")
	}
}

// parseArgs unmarshals tool arguments, returning an error payload for the
// model when the JSON is malformed.
func parseArgs(arguments string, into any) (string, bool) {
	if arguments == "" {
		arguments = "{}"
	}
	if err := json.Unmarshal([]byte(arguments), into); err != nil {
		return errorPayload("bad_arguments", "could not parse tool arguments: "+err.Error()), false
	}
	return "", true
}

func errorPayload(code, message string) string {
	out, _ := json.Marshal(map[string]string{"error": code, "message": message})
	return string(out)
}

func marshal(v any) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshalling tool result: %w", err)
	}
	return string(out), nil
}
