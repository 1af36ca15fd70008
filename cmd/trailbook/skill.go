// ABOUTME: Install agent skill for trailbook
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/

package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install the trailbook agent skill",
	Long: `Install the trailbook skill for AI coding agents.

This copies the skill definition to ~/.claude/skills/trailbook/
so an agent can use trailbook commands contextually.`,
	Annotations: noStorage(),
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		skip, _ := cmd.Flags().GetBool("yes")
		return installSkill(cmd, home, skip)
	},
}

func init() {
	installSkillCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func skillPath(home string) string {
	return filepath.Join(home, ".claude", "skills", "trailbook", "SKILL.md")
}

func installSkill(cmd *cobra.Command, home string, skipConfirm bool) error {
	path := skillPath(home)

	fmt.Println("┌─────────────────────────────────────────────────────────────┐")
	fmt.Println("│                 Trailbook Agent Skill                       │")
	fmt.Println("└─────────────────────────────────────────────────────────────┘")
	fmt.Println()
	fmt.Println("This will install the trailbook skill, enabling your agent to:")
	fmt.Println()
	fmt.Println("  • Import and inspect GPX recordings")
	fmt.Println("  • Compare a dog's trace with the runner's trail")
	fmt.Println("  • Trim traces and push them to the trail service")
	fmt.Println()
	fmt.Println("Destination:")
	fmt.Printf("  %s\n", path)
	fmt.Println()

	if _, err := os.Stat(path); err == nil {
		fmt.Println("Note: A skill file already exists and will be overwritten.")
		fmt.Println()
	}

	if !skipConfirm && !confirm(cmd, "Install the trailbook skill?") {
		fmt.Println("Installation canceled.")
		return nil
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil { // #nosec G301 - skill dir needs to be readable
		return fmt.Errorf("failed to create skill directory: %w", err)
	}

	if err := os.WriteFile(path, content, 0600); err != nil { // #nosec G306 - skill file needs to be readable
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	fmt.Println("✓ Installed trailbook skill successfully!")
	return nil
}
