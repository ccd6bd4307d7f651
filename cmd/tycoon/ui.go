package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/engine"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func renderStatus(stats []engine.TickStat) {
	accent.Println("Tick loops")
	if len(stats) == 0 {
		neutral.Println("  no passes recorded yet")
		return
	}
	for _, s := range stats {
		line := fmt.Sprintf("  %-12s runs=%-6d last=%s", s.Tick, s.Runs, s.LastRunAt.Format("15:04:05"))
		if s.LastError != "" {
			danger.Printf("%s err=%s\n", line, s.LastError)
			continue
		}
		success.Println(line)
	}
}

func renderStocks(prices map[string]int64) {
	accent.Println("Market")
	symbols := make([]string, 0, len(prices))
	for s := range prices {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	for _, s := range symbols {
		neutral.Printf("  %-8s %d\n", s, prices[s])
	}
}

func renderLeaderboard(rows []game.LeaderboardRow) {
	accent.Println("Leaderboard")
	for _, r := range rows {
		neutral.Printf("  #%-3d %-24s %d\n", r.Rank, r.Username, r.Balance)
	}
}

func renderTickRan(name string) {
	success.Printf("tick %s ran\n", name)
}
