package main

import (
	"fmt"
	"strings"

	"farecast-service/internal/app"
	"farecast-service/internal/infrastructure/oauth"

	"github.com/spf13/cobra"
)

func newRegisterCommandsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "register-commands",
		Short: "Register the bot's slash commands in the configured guild",
		RunE: func(cmd *cobra.Command, args []string) error {
			var missing []string
			if e.cfg.DiscordToken == "" {
				missing = append(missing, "DISCORD_TOKEN")
			}
			if e.cfg.DiscordApplicationID == "" {
				missing = append(missing, "DISCORD_APPLICATION_ID")
			}
			if e.cfg.DiscordGuildID == "" {
				missing = append(missing, "DISCORD_GUILD_ID")
			}
			if len(missing) > 0 {
				return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
			}

			commands := app.NewCommandRouter(e.log).Commands()
			registry := app.NewCommandRepository(e.cfg, e.log)
			if err := registry.RegisterGuildCommands(cmd.Context(), e.cfg.DiscordApplicationID, e.cfg.DiscordGuildID, commands); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %d command(s) in guild %s\n", len(commands), e.cfg.DiscordGuildID)
			return nil
		},
	}
}

func newTokenCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Check the Amadeus credentials by requesting one token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.cfg.AmadeusClientID == "" || e.cfg.AmadeusClientSecret == "" {
				return fmt.Errorf("missing configuration: AMADEUS_CLIENT_ID, AMADEUS_CLIENT_SECRET")
			}
			client := oauth.NewAmadeusOAuth(e.cfg.AmadeusBaseURL, e.cfg.AmadeusClientID, e.cfg.AmadeusClientSecret, nil, e.log)
			token, err := client.Token(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "token ok: %s\n", maskToken(token))
			return nil
		},
	}
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}
