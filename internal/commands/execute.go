package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Done    func(MarkArgs) (Result, error)
	Undo    func(MarkArgs) (Result, error)
	Log     func(LogArgs) (Result, error)
	Journal func(JournalArgs) (Result, error)
	Show    func(ShowArgs) (Result, error)
	Clear   func(ClearArgs) (Result, error)
	Theme   func(ThemeArgs) (Result, error)
	Mode    func(ModeArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeDone:
		return dispatch(cmd.Type, handlers.Done, cmd.Mark)
	case TypeUndo:
		return dispatch(cmd.Type, handlers.Undo, cmd.Mark)
	case TypeLog:
		return dispatch(cmd.Type, handlers.Log, cmd.Log)
	case TypeJournal:
		return dispatch(cmd.Type, handlers.Journal, cmd.Journal)
	case TypeShow:
		return dispatch(cmd.Type, handlers.Show, cmd.Show)
	case TypeClear:
		return dispatch(cmd.Type, handlers.Clear, cmd.Clear)
	case TypeTheme:
		return dispatch(cmd.Type, handlers.Theme, cmd.Theme)
	case TypeMode:
		return dispatch(cmd.Type, handlers.Mode, cmd.Mode)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func dispatch[A any](typ Type, handler func(A) (Result, error), args *A) (Result, error) {
	if handler == nil {
		return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", typ)}
	}
	if args == nil {
		return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s command has no arguments", typ)}
	}
	return handler(*args)
}
