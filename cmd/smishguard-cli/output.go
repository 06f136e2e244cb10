package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"github.com/mikey/smishguard/internal/core"
)

func tierColor(tier core.RiskTier) color.Color {
	switch tier {
	case core.TierSafe:
		return color.Green
	case core.TierSuspicious:
		return color.Yellow
	case core.TierDangerous:
		return color.Red
	default:
		return color.Gray
	}
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	return table
}

func printResult(w io.Writer, result *core.AnalysisResult, elapsed time.Duration) {
	printVerdict(w, result.Verdict)

	if result.Outcomes != nil {
		fmt.Fprintln(w)
		table := newTable(w, []string{"Classifier", "Status", "Elapsed", "Error"})
		o := result.Outcomes
		table.Append(outcomeRow(core.ClassifierLanguageModel, o.LM.Status, o.LM.Elapsed, o.LM.Err))
		table.Append(outcomeRow(core.ClassifierSpam, o.Spam.Status, o.Spam.Elapsed, o.Spam.Err))
		table.Append(outcomeRow(core.ClassifierURL, o.URL.Status, o.URL.Elapsed, o.URL.Err))
		table.Render()
	}

	fmt.Fprintf(w, "\nFrom cache: %t  Persisted: %t  Processing time: %v\n",
		result.FromCache, result.Persisted, elapsed.Round(time.Millisecond))
}

func outcomeRow(c core.Classifier, status core.OutcomeStatus, elapsed time.Duration, err *core.ClassifierError) []string {
	errText := ""
	if err != nil {
		errText = string(err.Cause)
	}
	return []string{string(c), string(status), elapsed.Round(time.Millisecond).String(), errText}
}

func printVerdict(w io.Writer, v *core.Verdict) {
	table := newTable(w, []string{"Field", "Value"})
	table.Append([]string{"Message", v.Content})
	if v.PhoneNumber != "" {
		table.Append([]string{"Phone number", v.PhoneNumber})
	}
	table.Append([]string{"URL", v.ExtractedURL})
	table.Append([]string{"Risk tier", tierColor(v.RiskTier).Sprint(string(v.RiskTier))})
	table.Append([]string{"Score", strconv.Itoa(v.TierScore) + "/10"})
	table.Append([]string{"Weighted", strconv.FormatFloat(v.WeightedScore, 'f', 4, 64)})
	table.Append([]string{"Scheme", v.WeightingScheme})
	table.Append([]string{"Spam model", string(v.Scores.SpamLabel)})
	table.Append([]string{"URL reputation", string(v.Scores.URLReputation)})
	table.Append([]string{"LM confidence", strconv.FormatFloat(v.Scores.LanguageModelScore, 'f', 2, 64)})
	table.Append([]string{"LM justification", v.Scores.Justification})
	table.Append([]string{"Analyzed at", v.AnalyzedAt.Format(time.RFC3339)})
	table.Render()
}

func printStats(w io.Writer, counts core.TierCounts) {
	table := newTable(w, []string{"Tier", "Messages"})
	total := 0
	for _, tier := range core.Tiers {
		table.Append([]string{tierColor(tier).Sprint(string(tier)), strconv.Itoa(counts[tier])})
		total += counts[tier]
	}
	table.SetFooter([]string{"Total", strconv.Itoa(total)})
	table.Render()
}
