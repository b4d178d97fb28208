package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/go-logr/logr"

	"github.com/IvanBrykalov/evictkit/internal/workload"
	"github.com/IvanBrykalov/evictkit/policy"
)

// runHitRates replays every standard scenario against every named policy
// at the scenario's own capacity and prints a table of hit rates.
func runHitRates(w io.Writer, log logr.Logger, names []string, t tuning, scale float64, seed uint64) error {
	scenarios := workload.Standard(scale, seed)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "policy")
	for _, s := range scenarios {
		fmt.Fprintf(tw, "\t%s(cap=%d)", s.Name, s.Capacity)
	}
	fmt.Fprintln(tw)

	for _, name := range names {
		f, err := factoryFor(name, t)
		if err != nil {
			return err
		}
		fmt.Fprint(tw, name)
		for _, s := range scenarios {
			r := workload.Replay(s, f(s.Capacity, policy.WithLogger[int, string](log.WithValues("policy", name, "scenario", s.Name))))
			log.V(1).Info("scenario done", "policy", name, "scenario", s.Name, "gets", r.Gets, "hits", r.Hits)
			fmt.Fprintf(tw, "\t%.2f%%", 100*r.HitRate())
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
