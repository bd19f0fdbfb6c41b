// Package report renders analysis results for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"followcheck/core"
)

const AllFollowBackMessage = "Everyone you follow follows you back 🎉"

type Options struct {
	ProfileBaseURL string
}

// ProfileURL joins the profile base URL and a username.
func ProfileURL(base, user string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + url.PathEscape(user)
}

// ProfileURLs returns one profile URL per account, in the same order.
func ProfileURLs(base string, users []string) []string {
	urls := make([]string, len(users))
	for i, user := range users {
		urls[i] = ProfileURL(base, user)
	}
	return urls
}

func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// Text writes a summary block followed by the accounts that do not follow back.
// Colors are only emitted when w is a terminal.
func Text(w io.Writer, res core.AnalysisResult, opts Options) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true).Underline(true)
	label := r.NewStyle().Width(22).Foreground(lipgloss.Color("8"))
	bad := r.NewStyle().Foreground(lipgloss.Color("1"))
	good := r.NewStyle().Foreground(lipgloss.Color("2"))
	handle := r.NewStyle().Bold(true)

	var b strings.Builder

	b.WriteString(heading.Render("Summary Stats") + "\n")
	rows := [][2]string{
		{"Followers", strconv.Itoa(res.FollowerCount)},
		{"Following", strconv.Itoa(res.FollowingCount)},
		{"Not Following Back", bad.Render(fmt.Sprintf("%d (%s)", len(res.NotFollowingBack), FormatPercent(res.NotFollowingBackPercent)))},
		{"Follow-Back Rate", good.Render(FormatPercent(res.FollowBackRate))},
	}
	for _, row := range rows {
		b.WriteString("  " + label.Render(row[0]) + row[1] + "\n")
	}

	b.WriteString("\n" + heading.Render("Accounts Not Following You Back") + "\n")
	if len(res.NotFollowingBack) == 0 {
		b.WriteString("  " + AllFollowBackMessage + "\n")
	}
	for _, user := range res.NotFollowingBack {
		b.WriteString("  " + handle.Render("@"+user) + "  " + ProfileURL(opts.ProfileBaseURL, user) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// JSON writes the result as indented JSON.
func JSON(w io.Writer, res core.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
