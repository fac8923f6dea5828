package cli

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/urfave/cli/v3"

	"github.com/duke-colab/bluebook/pkg/agent/tool"
	"github.com/duke-colab/bluebook/pkg/agent/tool/campus"
	"github.com/duke-colab/bluebook/pkg/cli/config"
	"github.com/duke-colab/bluebook/pkg/usecase"
)

//go:embed prompt/agent_system.md
var agentSystemPromptTmpl string

var agentSystemPrompt = template.Must(template.New("agent_system").Parse(agentSystemPromptTmpl))

type agentPromptData struct {
	Today   string
	Weekday string
}

func buildAgentSystemPrompt(now time.Time) (string, error) {
	var buf bytes.Buffer
	data := agentPromptData{
		Today:   now.Format("2006-01-02"),
		Weekday: now.Weekday().String(),
	}
	if err := agentSystemPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render agent system prompt")
	}
	return buf.String(), nil
}

func cmdAgent() *cli.Command {
	var query string
	var upstreamCfg config.Upstream
	var cacheCfg config.Cache
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "Question to answer with the campus data tools",
			Required:    true,
			Sources:     cli.EnvVars("BLUEBOOK_QUERY"),
			Destination: &query,
		},
	}

	// Add shared config flags
	flags = append(flags, upstreamCfg.Flags()...)
	flags = append(flags, cacheCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "agent",
		Aliases: []string{"a"},
		Usage:   "Answer one question with an LLM agent over the campus data tools",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := cacheCfg.Validate(); err != nil {
				return goerr.Wrap(err, "invalid cache configuration")
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure LLM client")
			}
			if llmClient == nil {
				return goerr.New("gemini-project is required for the agent command")
			}

			feedClient, directoryClient, scholarClient, err := upstreamCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure upstream clients")
			}

			uc := usecase.New(feedClient, directoryClient, scholarClient,
				usecase.WithCalendarTTL(cacheCfg.TTL()),
				usecase.WithReferenceTTL(cacheCfg.TTL()),
				usecase.WithLookaheadDays(cacheCfg.LookaheadDays()),
			)

			systemPrompt, err := buildAgentSystemPrompt(time.Now())
			if err != nil {
				return err
			}

			agent := gollem.New(llmClient,
				gollem.WithSystemPrompt(systemPrompt),
				gollem.WithTools(campus.New(uc.Calendar, uc.Directory, uc.Scholars, time.Now)...),
			)

			// Tool progress goes to stdout so the caller can watch the
			// agent work through the data sources.
			ctx = tool.WithUpdate(ctx, func(_ context.Context, msg string) {
				fmt.Println("⏳ " + msg)
			})

			resp, err := agent.Execute(ctx, gollem.Text(query))
			if err != nil {
				return goerr.Wrap(err, "failed to execute agent", goerr.V("query", query))
			}

			fmt.Println(strings.Join(resp.Texts, "\n"))
			return nil
		},
	}
}
