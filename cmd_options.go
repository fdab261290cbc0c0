package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"postcraft/backend/internal/config"
	contentapp "postcraft/backend/internal/features/content/application"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Print the platforms and content types in the template file",
	RunE: func(cmd *cobra.Command, args []string) error {
		templates := config.NewTemplateStore(cfg.TemplatesPath, logger)
		tc, err := templates.Load(cmd.Context())
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(tc.Options(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var (
	promptPlatform    string
	promptContentType string
	promptAudience    string
	promptIdea        string
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt a generate request would send, without calling the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		templates := config.NewTemplateStore(cfg.TemplatesPath, logger)
		tc, err := templates.Load(cmd.Context())
		if err != nil {
			return err
		}

		prompt, err := contentapp.NewPromptBuilder().Build(tc, promptContentType, promptPlatform, promptAudience, promptIdea)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), prompt)
		return nil
	},
}

func init() {
	promptCmd.Flags().StringVar(&promptPlatform, "platform", "", "platform key, e.g. linkedin")
	promptCmd.Flags().StringVar(&promptContentType, "content-type", "", "content type key, e.g. post")
	promptCmd.Flags().StringVar(&promptAudience, "audience", "", "target audience")
	promptCmd.Flags().StringVar(&promptIdea, "prompt", "", "user prompt")
	_ = promptCmd.MarkFlagRequired("platform")
	_ = promptCmd.MarkFlagRequired("content-type")
}
