// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package progress computes campaign percentages, currency labels, and phase lock state.

# Percentages

	progress.Pct(50, 100)  // 50
	progress.Pct(150, 100) // 100 (capped)
	progress.Pct(10, 0)    // 0 (no goal)

# Currency

FormatUSD uses a fixed en-US printer from golang.org/x/text:

	progress.FormatUSD(1234.6) // "$1,235"

# Lock Chains

A Chain lists phases in display order and names the phase each one waits on:

	chain := progress.DefaultChain
	for _, st := range chain.Evaluate(snapshot.Phases) {
		fmt.Println(st.ID, st.Percent, st.Locked)
	}

A phase is locked while its prerequisite is missing or below goal. Chains can
also be loaded from YAML with LoadChain.
*/
package progress
