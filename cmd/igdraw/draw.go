package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"igdraw/pkg/config"
	"igdraw/pkg/logger"
	"igdraw/pkg/lottery"
)

var (
	drawURL         string
	drawMentions    int
	drawWinners     int
	drawSubstitutes int
	drawListFile    string
)

// drawCmd runs one draw interactively from the terminal
var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Run one giveaway draw",
	Long: `Run a single draw and print the winners.

With --url the participants come from the post's comments, filtered by
--mentions. If Instagram asks for a two-factor code you will be prompted for
it. With --usernames-file the participants come from a file with one username
per line and no Instagram login happens.`,
	Example: `  # Draw 1 winner and 2 substitutes from a post, requiring 2 mentions
  igdraw draw --url https://instagram.com/p/XYZ/ --mentions 2 --winners 1 --substitutes 2

  # Draw from a manually collected list
  igdraw draw --usernames-file participants.txt --winners 3`,
	Run: runDraw,
}

func init() {
	rootCmd.AddCommand(drawCmd)
	drawCmd.Flags().StringVarP(&drawURL, "url", "u", "", "Instagram post or reel URL")
	drawCmd.Flags().IntVarP(&drawMentions, "mentions", "m", 1, "minimum mention count for eligibility")
	drawCmd.Flags().IntVarP(&drawWinners, "winners", "w", 1, "number of winners")
	drawCmd.Flags().IntVarP(&drawSubstitutes, "substitutes", "s", 0, "number of substitute winners")
	drawCmd.Flags().StringVar(&drawListFile, "usernames-file", "", "file with one participant username per line")
}

func runDraw(cmd *cobra.Command, args []string) {
	if drawURL == "" && drawListFile == "" {
		cmd.PrintErrln("Either --url or --usernames-file is required")
		os.Exit(1)
	}

	cfg, err := config.Load(configFile, map[string]interface{}{"log-level": logLevel})
	if err != nil {
		cmd.PrintErrf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		cmd.PrintErrf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()

	if drawListFile != "" {
		runManualDraw(cmd)
		return
	}

	resolveCredentials(cfg, log)

	service := lottery.New(cfg, log)

	outcome, err := service.StartDraw(drawURL, drawMentions)
	if err != nil {
		cmd.PrintErrf("Draw failed: %v\n", err)
		os.Exit(1)
	}

	if outcome.CheckpointRequired {
		cmd.PrintErrln("Instagram requires a security verification. Confirm your account in the Instagram app and try again.")
		os.Exit(1)
	}

	if outcome.TwoFactorRequired {
		fmt.Printf("An SMS verification code was sent to %s.\n", outcome.ObfuscatedPhone)
		fmt.Print("Enter the code: ")

		reader := bufio.NewReader(os.Stdin)
		code, err := reader.ReadString('\n')
		if err != nil {
			cmd.PrintErrf("Failed to read code: %v\n", err)
			os.Exit(1)
		}

		outcome, err = service.CompleteChallenge(outcome.ChallengeToken, strings.TrimSpace(code), drawURL, drawMentions)
		if err != nil {
			cmd.PrintErrf("Verification failed: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Fetched %d comments, %d eligible (>= %d mentions).\n",
		outcome.TotalComments, outcome.EligibleCount, drawMentions)

	result, err := lottery.Draw(outcome.Eligible, drawWinners, drawSubstitutes)
	if err != nil {
		cmd.PrintErrf("Draw failed: %v\n", err)
		os.Exit(1)
	}

	printDrawResult(result)
}

func runManualDraw(cmd *cobra.Command) {
	data, err := os.ReadFile(drawListFile)
	if err != nil {
		cmd.PrintErrf("Failed to read %s: %v\n", drawListFile, err)
		os.Exit(1)
	}

	usernames := strings.Split(string(data), "\n")
	result, err := lottery.DrawUsernames(usernames, drawWinners, drawSubstitutes)
	if err != nil {
		cmd.PrintErrf("Draw failed: %v\n", err)
		os.Exit(1)
	}

	printDrawResult(result)
}

func printDrawResult(result *lottery.DrawResult) {
	fmt.Println("\nWinners:")
	for _, winner := range result.Winners {
		fmt.Printf("  %d. @%s\n", winner.Position, winner.Username)
	}

	if len(result.Substitutes) > 0 {
		fmt.Println("\nSubstitutes:")
		for _, substitute := range result.Substitutes {
			fmt.Printf("  %d. @%s\n", substitute.Position, substitute.Username)
		}
	}
}
