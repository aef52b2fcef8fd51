package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeDone    Type = "done"
	TypeUndo    Type = "undo"
	TypeLog     Type = "log"
	TypeJournal Type = "journal"
	TypeShow    Type = "show"
	TypeClear   Type = "clear"
	TypeTheme   Type = "theme"
	TypeMode    Type = "mode"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MarkArgs addresses a task by its 1-based position in today's checklist.
type MarkArgs struct {
	Index int
}

type LogArgs struct {
	Minutes int
	Task    string
}

type JournalArgs struct {
	Text string
}

type Subject string

const (
	SubjectTree         Subject = "tree"
	SubjectWeek         Subject = "week"
	SubjectMonth        Subject = "month"
	SubjectYear         Subject = "year"
	SubjectAchievements Subject = "achievements"
	SubjectTask         Subject = "task"
)

type ShowArgs struct {
	Subject Subject
	Task    string
}

type ClearArgs struct {
	Range string
}

type ThemeArgs struct {
	Key string
}

type ModeArgs struct {
	Mode string
}

type Command struct {
	Type    Type
	Raw     string
	Mark    *MarkArgs
	Log     *LogArgs
	Journal *JournalArgs
	Show    *ShowArgs
	Clear   *ClearArgs
	Theme   *ThemeArgs
	Mode    *ModeArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeDone, TypeUndo:
		return parseMark(input, Type(head), args)
	case TypeLog:
		return parseLog(input, args)
	case TypeJournal:
		return parseJournal(input, raw)
	case TypeShow:
		return parseShow(input, args)
	case TypeClear:
		return parseClear(input, args)
	case TypeTheme:
		return parseSingle(input, TypeTheme, args, "theme requires a theme key")
	case TypeMode:
		return parseSingle(input, TypeMode, args, "mode requires pomodoro or long-pomodoro")
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseMark(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task number", typ)}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task number: %s", args[0])}
	}
	return Command{Type: typ, Raw: raw, Mark: &MarkArgs{Index: n}}, nil
}

func parseLog(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "log requires minutes"}
	}
	minutes, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(args[0]), "m"))
	if err != nil || minutes <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid minutes: %s", args[0])}
	}
	return Command{Type: TypeLog, Raw: raw, Log: &LogArgs{Minutes: minutes, Task: strings.Join(args[1:], " ")}}, nil
}

func parseJournal(raw, trimmed string) (Command, error) {
	text := strings.TrimSpace(trimmed[len(TypeJournal):])
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "journal requires text"}
	}
	return Command{Type: TypeJournal, Raw: raw, Journal: &JournalArgs{Text: text}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := Subject(strings.ToLower(args[0]))
	switch subject {
	case SubjectTree, SubjectWeek, SubjectMonth, SubjectYear, SubjectAchievements:
		return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
	case SubjectTask:
		name := strings.TrimSpace(strings.Join(args[1:], " "))
		if name == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show task requires a task name"}
		}
		return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject, Task: name}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown show subject: %s", args[0])}
	}
}

func parseClear(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "clear requires a range"}
	}
	return Command{Type: TypeClear, Raw: raw, Clear: &ClearArgs{Range: strings.ToLower(args[0])}}, nil
}

func parseSingle(raw string, typ Type, args []string, usage string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: usage}
	}
	cmd := Command{Type: typ, Raw: raw}
	if typ == TypeTheme {
		cmd.Theme = &ThemeArgs{Key: args[0]}
	} else {
		cmd.Mode = &ModeArgs{Mode: strings.ToLower(args[0])}
	}
	return cmd, nil
}
