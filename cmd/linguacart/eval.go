package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"linguacart/cmd/linguacart/ui"
	"linguacart/internal/config"
	"linguacart/internal/lexicon"
	"linguacart/internal/nlu"
)

// evalCase is one labeled utterance: the expected intent plus the slot
// values the understanding layer should extract from the text.
type evalCase struct {
	Text   string                 `json:"text"`
	Intent string                 `json:"intent"`
	Slots  map[string]interface{} `json:"slots"`
}

// scoredSlots are the slot keys the report covers.
var scoredSlots = []lexicon.Slot{
	lexicon.SlotLanguage,
	lexicon.SlotLevel,
	lexicon.SlotGenre,
	lexicon.SlotFormat,
	lexicon.SlotPriceMax,
}

// defaultEvalCases is the built-in regression set used when no file is given.
var defaultEvalCases = []evalCase{
	{Text: "Recommend an Italian A2 reader under €20 (paperback).", Intent: "ask_recommendation",
		Slots: map[string]interface{}{"language": "Italian", "level": "A2", "genre": "Readers", "format": "Paperback", "price_max": 20.0}},
	{Text: "I want to find German A2 readers.", Intent: "search_books",
		Slots: map[string]interface{}{"language": "German", "level": "A2", "genre": "Readers"}},
	{Text: "Add 1 to cart.", Intent: "add_to_cart", Slots: map[string]interface{}{}},
	{Text: "Show my cart.", Intent: "view_cart", Slots: map[string]interface{}{}},
	{Text: "Checkout now.", Intent: "checkout", Slots: map[string]interface{}{}},
	{Text: "Courier delivery.", Intent: "choose_delivery", Slots: map[string]interface{}{}},
	{Text: "Pay with Visa.", Intent: "provide_payment", Slots: map[string]interface{}{}},
	{Text: "Ship to 221B Baker Street, London.", Intent: "provide_address", Slots: map[string]interface{}{}},
	{Text: "Remove item 2, please.", Intent: "remove_from_cart", Slots: map[string]interface{}{}},
	{Text: "Show me more options.", Intent: "more_results", Slots: map[string]interface{}{}},
	{Text: "I need something below €20.", Intent: "filter_by_price", Slots: map[string]interface{}{"price_max": 20.0}},
	{Text: "I want to improve my vocabulary in Spanish.", Intent: "search_books",
		Slots: map[string]interface{}{"language": "Spanish", "genre": "Vocabulary"}},
}

// evalCmd scores the understanding layer against labeled utterances.
var evalCmd = &cobra.Command{
	Use:   "eval [cases.jsonl]",
	Short: "Score intent and slot extraction against labeled utterances",
	Long: `eval runs the rule-based understanding layer over a set of labeled
utterances and reports per-intent and per-slot accuracy. Cases are read
from a JSON Lines file with one {"text", "intent", "slots"} object per
line; without a file a built-in regression set is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cases := defaultEvalCases
		source := "built-in"
		if len(args) == 1 {
			loaded, err := loadEvalCases(args[0])
			if err != nil {
				return err
			}
			cases = loaded
			source = args[0]
		}
		if len(cases) == 0 {
			return fmt.Errorf("no evaluation cases in %s", source)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		styles := ui.NewStyles(ui.ResolveTheme(cfg.UI.Theme))
		report := runEval(cases)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Evaluated %d cases (%s)\n", len(cases), source)
		fmt.Fprintf(out, "Intent accuracy: %d/%d (%.1f%%)\n\n",
			report.intentCorrect, len(cases), 100*float64(report.intentCorrect)/float64(len(cases)))
		fmt.Fprintln(out, report.intentTable.View(styles))
		fmt.Fprintln(out, report.slotTable.View(styles))

		logger.Debug("eval complete",
			zap.Int("cases", len(cases)),
			zap.Int("intent_correct", report.intentCorrect))
		return nil
	},
}

// loadEvalCases reads one JSON object per line, skipping blank lines.
func loadEvalCases(path string) ([]evalCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cases: %w", err)
	}
	defer f.Close()

	var cases []evalCase
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var c evalCase
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("parse %s line %d: %w", path, line, err)
		}
		cases = append(cases, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read cases: %w", err)
	}
	return cases, nil
}

type evalReport struct {
	intentCorrect int
	intentTable   *ui.SimpleTable
	slotTable     *ui.SimpleTable
}

// runEval scores each case and builds the report tables.
func runEval(cases []evalCase) evalReport {
	type tally struct{ correct, total int }
	byIntent := map[string]*tally{}
	bySlot := map[lexicon.Slot]*tally{}
	for _, s := range scoredSlots {
		bySlot[s] = &tally{}
	}

	rep := evalReport{}
	for _, c := range cases {
		got := nlu.Understand(c.Text)

		t := byIntent[c.Intent]
		if t == nil {
			t = &tally{}
			byIntent[c.Intent] = t
		}
		t.total++
		if string(got.Intent) == c.Intent {
			t.correct++
			rep.intentCorrect++
		}

		for _, s := range scoredSlots {
			gold, labeled := c.Slots[string(s)]
			if !labeled {
				continue
			}
			bySlot[s].total++
			if slotEqual(got.Slots[s], gold) {
				bySlot[s].correct++
			}
		}
	}

	rep.intentTable = ui.NewSimpleTable("Intent accuracy", []string{"Intent", "Correct", "Total", "Accuracy"}).AlignRight(1, 2, 3)
	intents := make([]string, 0, len(byIntent))
	for k := range byIntent {
		intents = append(intents, k)
	}
	sort.Strings(intents)
	for _, k := range intents {
		t := byIntent[k]
		rep.intentTable.AddRow(k,
			fmt.Sprintf("%d", t.correct),
			fmt.Sprintf("%d", t.total),
			fmt.Sprintf("%.2f", float64(t.correct)/float64(t.total)))
	}

	rep.slotTable = ui.NewSimpleTable("Slot extraction (exact match)", []string{"Slot", "Correct", "Support", "Accuracy"}).AlignRight(1, 2, 3)
	for _, s := range scoredSlots {
		t := bySlot[s]
		if t.total == 0 {
			continue
		}
		rep.slotTable.AddRow(string(s),
			fmt.Sprintf("%d", t.correct),
			fmt.Sprintf("%d", t.total),
			fmt.Sprintf("%.2f", float64(t.correct)/float64(t.total)))
	}

	return rep
}

// slotEqual compares a predicted slot value against its JSON-decoded gold
// label. Gold numbers arrive as float64 regardless of how they were written.
func slotEqual(pred interface{}, gold interface{}) bool {
	if pred == nil {
		return false
	}
	switch g := gold.(type) {
	case float64:
		p, ok := pred.(float64)
		return ok && p == g
	case string:
		p, ok := pred.(string)
		return ok && p == g
	default:
		return false
	}
}
