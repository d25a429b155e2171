package models

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ActionType is the closed set of follow-up intents the assistant can attach
// to a reply. Unrecognized values always normalize to ActionUnknown.
type ActionType string

const (
	ActionCreatePoster    ActionType = "create_poster"
	ActionOpenPlanner     ActionType = "open_planner"
	ActionConsultMore     ActionType = "consult_more"
	ActionGenerateImage   ActionType = "generate_image"
	ActionContentPlanning ActionType = "content_planning"
	ActionUnknown         ActionType = "unknown"
)

// ParseActionType normalizes a raw intent string (e.g. the X-Action-Intent
// header value) into the closed ActionType set.
func ParseActionType(s string) ActionType {
	switch ActionType(s) {
	case ActionCreatePoster, ActionOpenPlanner, ActionConsultMore,
		ActionGenerateImage, ActionContentPlanning:
		return ActionType(s)
	default:
		return ActionUnknown
	}
}

// Action is the follow-up suggestion rendered beneath an assistant message.
// Type is the single non-optional discriminant; the remaining fields are
// variant-specific.
type Action struct {
	Type        ActionType `json:"type"`
	Label       string     `json:"label"`
	Prompt      string     `json:"prompt,omitempty"`
	Description string     `json:"description,omitempty"`
}

// SuggestAction builds the UI follow-up for a classified intent. Returns nil
// for intents that carry no suggestion.
func SuggestAction(intent ActionType, userInput string) *Action {
	switch intent {
	case ActionGenerateImage, ActionCreatePoster:
		return &Action{
			Type:        intent,
			Label:       "Buat Poster Sekarang",
			Prompt:      userInput,
			Description: "Ubah ide ini jadi poster promosi siap pakai.",
		}
	case ActionContentPlanning, ActionOpenPlanner:
		return &Action{
			Type:        intent,
			Label:       "Buka Campaign Planner",
			Description: "Susun jadwal konten mingguan dari ide ini.",
		}
	case ActionConsultMore:
		return &Action{
			Type:  intent,
			Label: "Lanjut Konsultasi",
		}
	case ActionUnknown:
		return nil
	default:
		return nil
	}
}

// ChatMessage is one entry in a conversation. The assistant message starts as
// an empty placeholder and is replaced (never mutated in place) as stream
// chunks arrive, then finalized once with the resolved action.
type ChatMessage struct {
	ID      string  `json:"id"`
	Role    Role    `json:"role"`
	Content string  `json:"content"`
	Action  *Action `json:"action,omitempty"`
}

// ChatSession is the singleton per-user conversation record.
type ChatSession struct {
	ID        string        `json:"id" db:"id"`
	UserID    string        `json:"user_id" db:"user_id"`
	Messages  []ChatMessage `json:"messages" db:"messages"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// AppendMessage returns a new message list with msg appended. The input slice
// is never modified, so concurrent streams holding older snapshots stay valid.
func AppendMessage(msgs []ChatMessage, msg ChatMessage) []ChatMessage {
	out := make([]ChatMessage, 0, len(msgs)+1)
	out = append(out, msgs...)
	return append(out, msg)
}

// ReplaceMessage returns a new list where the message with the given id is
// replaced by fn's result. All mutations are keyed by message id, never by
// positional index, so interleaved updates from two in-flight streams cannot
// corrupt each other's target message. Messages with other ids are untouched.
func ReplaceMessage(msgs []ChatMessage, id string, fn func(ChatMessage) ChatMessage) []ChatMessage {
	out := make([]ChatMessage, len(msgs))
	for i, m := range msgs {
		if m.ID == id {
			out[i] = fn(m)
		} else {
			out[i] = m
		}
	}
	return out
}
