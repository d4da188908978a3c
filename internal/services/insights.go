package services

import "github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"

const (
	RuleCaloriesLow           = "calories.low"
	RuleCaloriesSlightlyBelow = "calories.slightly_below"
	RuleCaloriesOnTarget      = "calories.on_target"
	RuleCaloriesSlightlyAbove = "calories.slightly_above"
	RuleCaloriesExcess        = "calories.excess"
	RuleProteinLow            = "macros.protein_low"
	RuleProteinHigh           = "macros.protein_high"
	RuleCarbsLow              = "macros.carbs_low"
	RuleCarbsHigh             = "macros.carbs_high"
	RuleFatLow                = "macros.fat_low"
	RuleFatHigh               = "macros.fat_high"
	RuleMacrosBalanced        = "macros.balanced"
	RuleMuscleProtein         = "macros.muscle_protein"
	RuleHydrationLow          = "hydration.low"
	RuleHydrationProgress     = "hydration.progress"
	RuleHydrationGoalReached  = "hydration.goal_reached"
)

type Translator interface {
	Translate(language string, key string) string
	Translatef(language string, key string, args ...any) string
}

type InsightProfile struct {
	Gender        string
	ActivityLevel string
	Goal          string
	Language      string
}

func InsightProfileFromUser(user models.User) InsightProfile {
	return InsightProfile{
		Gender:        user.Gender,
		ActivityLevel: user.ActivityLevel,
		Goal:          user.Goal,
		Language:      user.Language,
	}
}

type InsightDraft struct {
	Type            string  `json:"type"`
	Rule            string  `json:"rule"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Recommendation  string  `json:"recommendation"`
	ConfidenceScore float64 `json:"confidence_score"`
}

type insightRule struct {
	insightType string
	rule        string
	confidence  float64
	args        []any
}

// GenerateInsights scores one day of intake against the profile's goals.
// Calorie and macro rules only fire when the day has calories; hydration
// rules always fire. The result order is not significant.
func GenerateInsights(totals DailyTotals, profile InsightProfile, waterML int, translator Translator) []InsightDraft {
	fired := make([]insightRule, 0, 6)
	if totals.Calories > 0 {
		fired = append(fired, calorieRule(totals, profile))
		fired = append(fired, macroRules(totals, profile)...)
	}
	fired = append(fired, hydrationRule(waterML))

	drafts := make([]InsightDraft, 0, len(fired))
	for _, rule := range fired {
		drafts = append(drafts, rule.draft(profile.Language, translator))
	}
	return drafts
}

func calorieRule(totals DailyTotals, profile InsightProfile) insightRule {
	goal := AdjustedCalorieGoal(profile.ActivityLevel, profile.Gender, profile.Goal)
	percent := percentOf(totals.Calories, float64(goal))
	args := []any{percent, goal}

	switch {
	case percent < 70:
		return insightRule{insightType: models.InsightWarning, rule: RuleCaloriesLow, confidence: 0.85, args: args}
	case percent < 90:
		return insightRule{insightType: models.InsightNutrition, rule: RuleCaloriesSlightlyBelow, confidence: 0.70, args: args}
	case percent <= 110:
		return insightRule{insightType: models.InsightAchievement, rule: RuleCaloriesOnTarget, confidence: 0.90, args: args}
	case percent <= 130:
		return insightRule{insightType: models.InsightNutrition, rule: RuleCaloriesSlightlyAbove, confidence: 0.75, args: args}
	default:
		return insightRule{insightType: models.InsightWarning, rule: RuleCaloriesExcess, confidence: 0.85, args: args}
	}
}

func macroRules(totals DailyTotals, profile InsightProfile) []insightRule {
	ratios, ok := ComputeMacroRatios(totals)
	if !ok {
		return nil
	}

	rules := make([]insightRule, 0, 4)
	checks := []struct {
		ratio    float64
		band     MacroBand
		lowRule  string
		highRule string
	}{
		{ratio: ratios.Protein, band: ProteinBand, lowRule: RuleProteinLow, highRule: RuleProteinHigh},
		{ratio: ratios.Carbs, band: CarbsBand, lowRule: RuleCarbsLow, highRule: RuleCarbsHigh},
		{ratio: ratios.Fat, band: FatBand, lowRule: RuleFatLow, highRule: RuleFatHigh},
	}
	for _, check := range checks {
		if check.band.Contains(check.ratio) {
			continue
		}
		args := []any{check.ratio * 100}
		switch {
		case check.ratio < check.band.Min:
			rules = append(rules, insightRule{insightType: models.InsightBalance, rule: check.lowRule, confidence: 0.75, args: args})
		default:
			rules = append(rules, insightRule{insightType: models.InsightBalance, rule: check.highRule, confidence: 0.75, args: args})
		}
	}
	if len(rules) == 0 {
		rules = append(rules, insightRule{insightType: models.InsightAchievement, rule: RuleMacrosBalanced, confidence: 0.80})
	}

	if profile.Goal == models.GoalGainMuscle && ratios.Protein < MuscleGainProteinRatio {
		rules = append(rules, insightRule{
			insightType: models.InsightNutrition,
			rule:        RuleMuscleProtein,
			confidence:  0.70,
			args:        []any{ratios.Protein * 100},
		})
	}
	return rules
}

func hydrationRule(waterML int) insightRule {
	percent := percentOf(float64(waterML), WaterGoalML)
	args := []any{waterML, percent, WaterGoalML}

	switch {
	case percent < 50:
		return insightRule{insightType: models.InsightWarning, rule: RuleHydrationLow, confidence: 0.90, args: args}
	case percent < 90:
		return insightRule{insightType: models.InsightHydration, rule: RuleHydrationProgress, confidence: 0.70, args: args}
	default:
		return insightRule{insightType: models.InsightAchievement, rule: RuleHydrationGoalReached, confidence: 0.95, args: args}
	}
}

func (rule insightRule) draft(language string, translator Translator) InsightDraft {
	prefix := "insight." + rule.rule
	draft := InsightDraft{
		Type:            rule.insightType,
		Rule:            rule.rule,
		ConfidenceScore: rule.confidence,
	}
	if translator == nil {
		draft.Title = prefix + ".title"
		draft.Description = prefix + ".description"
		draft.Recommendation = prefix + ".recommendation"
		return draft
	}

	draft.Title = translator.Translate(language, prefix+".title")
	if len(rule.args) > 0 {
		draft.Description = translator.Translatef(language, prefix+".description", rule.args...)
	} else {
		draft.Description = translator.Translate(language, prefix+".description")
	}
	draft.Recommendation = translator.Translate(language, prefix+".recommendation")
	return draft
}
