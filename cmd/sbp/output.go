package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"sbp-go/internal/model"
	"sbp-go/internal/sbp"
	"sbp-go/internal/structure"
)

// envPassphrase supplies the key passphrase when stdin is not a terminal.
const envPassphrase = "SBP_PASSPHRASE"

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "success":
		return successStyle
	case "error":
		return errorStyle
	default:
		return warningStyle
	}
}

// printError reports a command failure. Validation problems are listed one
// per line.
func printError(err error) {
	var verr *structure.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Invalid project:"))
		for _, p := range verr.Problems {
			fmt.Fprintln(os.Stderr, "  - "+p)
		}
		return
	}
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
}

// printPlan writes the summary box followed by the folder tree.
func printPlan(w io.Writer, plan *structure.Plan) {
	s := plan.Summary
	lines := []string{
		headingStyle.Render(s.ProjectName),
		"Type:      " + s.ProjectType,
		"Work:      " + s.WorkType,
	}
	if s.ProjectDate != "" {
		lines = append(lines, "Date:      "+s.ProjectDate)
	}
	if s.ClientName != "" {
		lines = append(lines, "Client:    "+s.ClientName)
	}
	if len(s.Features) > 0 {
		lines = append(lines, "Features:  "+strings.Join(s.Features, ", "))
	}
	lines = append(lines, dimStyle.Render(fmt.Sprintf("%d folders, %d files", len(plan.Paths), len(plan.Files))))

	fmt.Fprintln(w, summaryStyle.Render(strings.Join(lines, "\n")))
	fmt.Fprintln(w, plan.Preview())
}

func printCreated(w io.Writer, result *sbp.CreateResult) {
	name := result.Package.Name
	if result.Package.Sealed {
		name += dimStyle.Render(" (encrypted)")
	}
	fmt.Fprintln(w, successStyle.Render("Created ")+name)
	for _, d := range result.Destinations {
		fmt.Fprintln(w, "  -> "+d)
	}
	if result.ClientAdded {
		fmt.Fprintln(w, dimStyle.Render("Added "+result.Plan.Summary.ClientName+" to the client list"))
	}
}

func printClients(w io.Writer, clients []*model.Client) {
	for _, c := range clients {
		line := fmt.Sprintf("%-24s %s", c.Name, dimStyle.Render(fmt.Sprintf("%d project(s)", len(c.Projects))))
		if c.Notes != "" {
			line += "  " + c.Notes
		}
		fmt.Fprintln(w, line)
	}
}

func printClient(w io.Writer, c *model.Client) {
	fmt.Fprintln(w, headingStyle.Render(c.Name))
	fmt.Fprintln(w, dimStyle.Render("Added "+c.CreatedAt.Local().Format("January 2, 2006")))
	if c.Notes != "" {
		fmt.Fprintln(w, c.Notes)
	}
	if len(c.Projects) == 0 {
		fmt.Fprintln(w, "No projects recorded.")
		return
	}
	fmt.Fprintln(w, "Projects:")
	for _, p := range c.Projects {
		fmt.Fprintln(w, "  "+p)
	}
}

// readPassphrase prompts on the terminal without echo. When stdin is not a
// terminal it uses SBP_PASSPHRASE, then the first line of stdin.
func readPassphrase(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		if p := os.Getenv(envPassphrase); p != "" {
			return p, nil
		}
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(b), nil
}

// readNewPassphrase asks twice on a terminal and requires both to match.
func readNewPassphrase() (string, error) {
	first, err := readPassphrase("New passphrase: ")
	if err != nil {
		return "", err
	}
	if first == "" {
		return "", fmt.Errorf("passphrase must not be empty")
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return first, nil
	}

	second, err := readPassphrase("Repeat passphrase: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", fmt.Errorf("passphrases do not match")
	}
	return first, nil
}
