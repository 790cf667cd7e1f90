package cmd

import (
	"fmt"

	"github.com/lypt0x/openai-go/pkg/openai"
	"github.com/spf13/cobra"
)

func newCompleteCmd() *cobra.Command {
	req := openai.NewCompletion()
	var (
		engine   string
		suffix   string
		logprobs int
	)

	cmd := &cobra.Command{
		Use:   "complete [prompt]",
		Short: "Create a completion for a prompt",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				req.Prompt = args[0]
			}
			if cmd.Flags().Changed("suffix") {
				req.Suffix = &suffix
			}
			if cmd.Flags().Changed("logprobs") {
				req.Logprobs = &logprobs
			}
			if len(req.Stop) > 4 {
				return fmt.Errorf("at most 4 stop sequences are allowed, got %d", len(req.Stop))
			}
			return runEndpoint(cmd, engine, req)
		},
	}

	f := cmd.Flags()
	f.StringVar(&engine, "engine", "davinci", "engine id")
	f.StringVar(&req.Prompt, "prompt", req.Prompt, "prompt to complete")
	f.StringVar(&suffix, "suffix", "", "text that follows the completion")
	f.IntVar(&req.MaxTokens, "max-tokens", req.MaxTokens, "maximum tokens to generate")
	f.Float64Var(&req.Temperature, "temperature", req.Temperature, "sampling temperature")
	f.Float64Var(&req.TopP, "top-p", req.TopP, "nucleus sampling mass")
	f.IntVarP(&req.N, "count", "n", req.N, "number of completions")
	f.IntVar(&logprobs, "logprobs", 0, "include log probabilities of the N most likely tokens")
	f.BoolVar(&req.Echo, "echo", req.Echo, "echo the prompt back")
	f.StringArrayVar(&req.Stop, "stop", nil, "stop sequence (repeatable, up to 4)")
	f.Float64Var(&req.PresencePenalty, "presence-penalty", req.PresencePenalty, "presence penalty")
	f.Float64Var(&req.FrequencyPenalty, "frequency-penalty", req.FrequencyPenalty, "frequency penalty")
	f.IntVar(&req.BestOf, "best-of", req.BestOf, "completions generated server-side")
	f.StringToIntVar(&req.LogitBias, "logit-bias", nil, "token bias, e.g. 50256=-100")
	f.StringVar(&req.User, "user", "", "end-user id for abuse monitoring")

	return cmd
}

func newEditCmd() *cobra.Command {
	req := openai.NewEdit()
	var engine string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit text following an instruction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEndpoint(cmd, engine, req)
		},
	}

	f := cmd.Flags()
	f.StringVar(&engine, "engine", "text-davinci-edit-001", "engine id")
	f.StringVar(&req.Input, "input", "", "text to edit")
	f.StringVar(&req.Instruction, "instruction", "", "how to edit the input")
	f.Float64Var(&req.Temperature, "temperature", req.Temperature, "sampling temperature")
	f.Float64Var(&req.TopP, "top-p", req.TopP, "nucleus sampling mass")
	f.IntVarP(&req.N, "count", "n", req.N, "number of edits")
	cmd.MarkFlagRequired("instruction")

	return cmd
}

func newSearchCmd() *cobra.Command {
	req := openai.NewSearch()
	var (
		engine string
		file   string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank documents against a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Query = args[0]
			if cmd.Flags().Changed("file") {
				req.File = &file
			}
			return runEndpoint(cmd, engine, req)
		},
	}

	f := cmd.Flags()
	f.StringVar(&engine, "engine", "ada", "engine id")
	f.StringArrayVarP(&req.Documents, "document", "d", nil, "document to search (repeatable)")
	f.StringVar(&file, "file", "", "id of an uploaded file with documents")
	f.IntVar(&req.MaxRerank, "max-rerank", req.MaxRerank, "documents re-ranked when --file is set")
	f.BoolVar(&req.ReturnMetadata, "return-metadata", false, "return document metadata when --file is set")
	f.StringVar(&req.User, "user", "", "end-user id for abuse monitoring")

	return cmd
}

func newClassifyCmd() *cobra.Command {
	req := openai.NewClassification()
	var (
		model       string
		searchModel string
		file        string
		examples    []string
	)

	cmd := &cobra.Command{
		Use:   "classify <query>",
		Short: "Label a query from labeled examples",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			req.Query = args[0]
			if req.Model, err = parseModel(model); err != nil {
				return err
			}
			if req.SearchModel, err = parseModel(searchModel); err != nil {
				return err
			}
			if req.Examples, err = parsePairs(examples); err != nil {
				return err
			}
			if cmd.Flags().Changed("file") {
				req.File = &file
			}
			return runEndpoint(cmd, "", req)
		},
	}

	f := cmd.Flags()
	f.StringVar(&model, "model", string(req.Model), "completion model")
	f.StringVar(&searchModel, "search-model", string(req.SearchModel), "search model")
	f.StringArrayVarP(&examples, "example", "e", nil, `labeled example "text|label" (repeatable)`)
	f.StringVar(&file, "file", "", "id of an uploaded file with examples")
	f.StringArrayVarP(&req.Labels, "label", "l", nil, "candidate label (repeatable)")
	f.Float64Var(&req.Temperature, "temperature", req.Temperature, "sampling temperature")
	f.IntVar(&req.Logprobs, "logprobs", req.Logprobs, "include log probabilities")
	f.IntVar(&req.MaxExamples, "max-examples", req.MaxExamples, "examples ranked when --file is set")
	f.StringToIntVar(&req.LogitBias, "logit-bias", nil, "token bias, e.g. 50256=-100")
	f.BoolVar(&req.ReturnPrompt, "return-prompt", false, "include the final prompt in the reply")
	f.BoolVar(&req.ReturnMetadata, "return-metadata", false, "return example metadata when --file is set")
	f.StringSliceVar(&req.Expand, "expand", nil, "objects to expand (completion, file)")
	f.StringVar(&req.User, "user", "", "end-user id for abuse monitoring")

	return cmd
}

func newAnswerCmd() *cobra.Command {
	req := openai.NewAnswer()
	var (
		model       string
		searchModel string
		file        string
		examples    []string
	)

	cmd := &cobra.Command{
		Use:   "answer <question>",
		Short: "Answer a question from documents and examples",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			req.Question = args[0]
			if req.Model, err = parseModel(model); err != nil {
				return err
			}
			if req.SearchModel, err = parseModel(searchModel); err != nil {
				return err
			}
			if req.Examples, err = parsePairs(examples); err != nil {
				return err
			}
			if cmd.Flags().Changed("file") {
				req.File = &file
			}
			if len(req.Stop) > 4 {
				return fmt.Errorf("at most 4 stop sequences are allowed, got %d", len(req.Stop))
			}
			return runEndpoint(cmd, "", req)
		},
	}

	f := cmd.Flags()
	f.StringVar(&model, "model", string(req.Model), "completion model")
	f.StringVar(&searchModel, "search-model", string(req.SearchModel), "search model")
	f.StringArrayVarP(&examples, "example", "e", nil, `example "question|answer" (repeatable)`)
	f.StringVar(&req.ExamplesContext, "examples-context", "", "text the examples were answered from")
	f.StringArrayVarP(&req.Documents, "document", "d", nil, "document to answer from (repeatable)")
	f.StringVar(&file, "file", "", "id of an uploaded file with documents")
	f.IntVar(&req.MaxRerank, "max-rerank", req.MaxRerank, "documents ranked when --file is set")
	f.Float64Var(&req.Temperature, "temperature", req.Temperature, "sampling temperature")
	f.IntVar(&req.Logprobs, "logprobs", req.Logprobs, "include log probabilities")
	f.IntVar(&req.MaxTokens, "max-tokens", req.MaxTokens, "maximum tokens in the answer")
	f.StringArrayVar(&req.Stop, "stop", nil, "stop sequence (repeatable, up to 4)")
	f.IntVarP(&req.N, "count", "n", req.N, "number of answers")
	f.StringToIntVar(&req.LogitBias, "logit-bias", nil, "token bias, e.g. 50256=-100")
	f.BoolVar(&req.ReturnMetadata, "return-metadata", false, "return document metadata when --file is set")
	f.BoolVar(&req.ReturnPrompt, "return-prompt", false, "include the final prompt in the reply")
	f.StringSliceVar(&req.Expand, "expand", nil, "objects to expand (completion, file)")
	f.StringVar(&req.User, "user", "", "end-user id for abuse monitoring")

	return cmd
}
