package bot

import "github.com/vovakirdan/blockfall/internal/config"

// WeightsFromConfig converts configured evaluator weights.
func WeightsFromConfig(c config.WeightsConfig) Weights {
	return Weights{
		AggregateHeight: c.AggregateHeight,
		MaxHeight:       c.MaxHeight,
		Unevenness:      c.Unevenness,
		Holes:           c.Holes,
		Blockers:        c.Blockers,
	}
}

// SearcherFromConfig builds a searcher from the bot settings. The coin-flip
// tie-break draws from seed.
func SearcherFromConfig(c config.BotConfig, seed int64) *Searcher {
	return &Searcher{
		Eval:     NewEvaluator(WeightsFromConfig(c.Weights)),
		TieBreak: ParseTieBreak(c.TieBreak, seed),
		Parallel: c.Parallel,
	}
}
