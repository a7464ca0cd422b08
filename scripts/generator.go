package scripts

import (
	"context"
	"strings"

	"github.com/reusee/mailx/conversations"
	"github.com/reusee/mailx/generators"
	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/prompts"
)

const (
	Temperature = 1.0
	AgentName   = "get_script"
)

// GenerationResult is the reply split into a message and, when present,
// the classified script.
type GenerationResult struct {
	Message string
	Script  *ValidatedScript
}

// Generator turns user requests into scripts within one conversation.
// It is the only writer of its Conversation.
type Generator struct {
	conversation *conversations.Conversation
	backend      generators.Generator
	sessionLog   *generators.SessionLog
	bootstrap    func() []generators.Turn
	logger       logs.Logger
}

func NewGenerator(
	conversation *conversations.Conversation,
	backend generators.Generator,
	sessionLog *generators.SessionLog,
	bootstrap func() []generators.Turn,
	logger logs.Logger,
) *Generator {
	return &Generator{
		conversation: conversation,
		backend:      backend,
		sessionLog:   sessionLog,
		bootstrap:    bootstrap,
		logger:       logger,
	}
}

type NewSessionGenerator func(conversation *conversations.Conversation) (*Generator, error)

func (Module) NewSessionGenerator(
	getDefault generators.GetDefaultGenerator,
	sessionLog *generators.SessionLog,
	bootstrap prompts.Bootstrap,
	logger logs.Logger,
) NewSessionGenerator {
	return func(conversation *conversations.Conversation) (*Generator, error) {
		backend, err := getDefault()
		if err != nil {
			return nil, err
		}
		return NewGenerator(conversation, backend, sessionLog, bootstrap, logger), nil
	}
}

func (g *Generator) Conversation() *conversations.Conversation {
	return g.conversation
}

// Generate sends the conversation plus the request to the backend. Backend
// errors are returned as is; in that case no assistant turn is recorded.
func (g *Generator) Generate(ctx context.Context, request string) (*GenerationResult, error) {
	if !g.conversation.Bootstrapped() {
		g.conversation.Append(g.bootstrap()...)
	}
	g.conversation.Append(generators.Turn{
		Role:    generators.RoleUser,
		Content: request,
	})

	reply, err := g.sessionLog.Generate(ctx, g.backend, g.conversation.Turns(), Temperature, AgentName)
	if err != nil {
		return nil, logs.WrapSpan(ctx, err)
	}

	result := &GenerationResult{}
	message, candidate, found := Extract(reply)
	result.Message = message
	content := message
	if found && strings.TrimSpace(candidate) != "" {
		validated := Validate(candidate)
		result.Script = &validated
		content = validated.Annotate(message)
		if !validated.Valid {
			g.logger.InfoContext(ctx, "invalid script",
				"diagnostic", validated.Diagnostic,
			)
		}
	}

	g.conversation.Append(generators.Turn{
		Role:    generators.RoleAssistant,
		Content: content,
	})

	return result, nil
}
