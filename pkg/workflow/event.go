package workflow

type EventKind string

const (
	EventPush        EventKind = "push"
	EventPullRequest EventKind = "pull_request"
	EventSchedule    EventKind = "schedule"
	EventManual      EventKind = "manual"
)

// Event 外部触发事件（webhook 推送 / 定时 / 手动）
type Event struct {
	Kind   EventKind `json:"kind"`
	Branch string    `json:"branch,omitempty"`
}

type BranchRule struct {
	Branches []string `yaml:"branches"`
}

type ScheduleRule struct {
	Cron string `yaml:"cron"`
}

// Rules 工作流的触发规则，对应配置里的 on: 段
type Rules struct {
	Push        *BranchRule   `yaml:"push,omitempty"`
	PullRequest *BranchRule   `yaml:"pull_request,omitempty"`
	Schedule    *ScheduleRule `yaml:"schedule,omitempty"`
}

// Matches reports whether an incoming event activates the workflow.
// Pure function: kind must carry a rule and the branch must match one of
// the rule's branch names (exact match). Anything else is a skip, not
// an error.
func (r Rules) Matches(ev Event) bool {
	switch ev.Kind {
	case EventPush:
		return r.Push != nil && matchBranch(r.Push.Branches, ev.Branch)
	case EventPullRequest:
		return r.PullRequest != nil && matchBranch(r.PullRequest.Branches, ev.Branch)
	default:
		// schedule/manual 不走分支过滤，由各自的触发入口直接启动
		return false
	}
}

func matchBranch(branches []string, branch string) bool {
	for _, b := range branches {
		if b == branch {
			return true
		}
	}
	return false
}
