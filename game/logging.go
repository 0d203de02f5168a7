package game

// recordFrame feeds the stats window and flushes it when complete.
func (g *Game) recordFrame(dt float64) {
	g.collector.RecordFrame(dt)
	if !g.collector.ShouldFlush() {
		return
	}

	stats := g.collector.Flush(g.engine.Snapshot())
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats(g.logger)
		perfStats.LogStats(g.logger)
	}

	if err := g.output.WriteWindow(stats); err != nil {
		g.logger.Error("failed to write frames", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
		g.logger.Error("failed to write perf", "error", err)
	}
}
