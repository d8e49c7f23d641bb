package batch

import (
	"fmt"

	"Pipewrap/internal/calc/repair"
	"Pipewrap/internal/catalog"
)

// One request, many defects on the same line. Each case runs the full
// pipeline independently; one bad case fails the whole batch so partial
// designs never go out.

type Input struct {
	Items []repair.Input `json:"items"`
}

type Result struct {
	Results []repair.Result `json:"results"`
}

func Calculate(in Input, cat *catalog.Catalog) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	out := Result{Results: make([]repair.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := repair.Calculate(item, cat)
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i+1, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
