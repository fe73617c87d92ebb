package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mainOnlyRules() Rules {
	return Rules{
		Push:        &BranchRule{Branches: []string{"main"}},
		PullRequest: &BranchRule{Branches: []string{"main"}},
	}
}

func TestMatches_PushOnConfiguredBranch(t *testing.T) {
	rules := mainOnlyRules()

	assert.True(t, rules.Matches(Event{Kind: EventPush, Branch: "main"}))
	assert.True(t, rules.Matches(Event{Kind: EventPullRequest, Branch: "main"}))
}

func TestMatches_PushOnOtherBranchSkips(t *testing.T) {
	rules := mainOnlyRules()

	assert.False(t, rules.Matches(Event{Kind: EventPush, Branch: "dev"}))
	assert.False(t, rules.Matches(Event{Kind: EventPullRequest, Branch: "feature/x"}))
}

func TestMatches_KindWithoutRuleSkips(t *testing.T) {
	rules := Rules{Push: &BranchRule{Branches: []string{"main"}}}

	assert.False(t, rules.Matches(Event{Kind: EventPullRequest, Branch: "main"}))
}

func TestMatches_ScheduleAndManualNeverMatch(t *testing.T) {
	rules := mainOnlyRules()

	assert.False(t, rules.Matches(Event{Kind: EventSchedule}))
	assert.False(t, rules.Matches(Event{Kind: EventManual}))
}

func TestMatches_MultipleBranches(t *testing.T) {
	rules := Rules{Push: &BranchRule{Branches: []string{"main", "release"}}}

	assert.True(t, rules.Matches(Event{Kind: EventPush, Branch: "release"}))
	assert.False(t, rules.Matches(Event{Kind: EventPush, Branch: "releases"}))
}
