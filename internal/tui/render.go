package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/lockbox/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

// renderPage frames data under a title. An empty body renders as "-".
func renderPage(title, data string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(data) == "" {
		b.WriteString("-\n")
	} else {
		b.WriteString(data)
		if !strings.HasSuffix(data, "\n") {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderItems lists titles only. Records that failed to decrypt are shown
// with their id and a marker instead of being dropped.
func RenderItems(items []models.DecryptedItem) string {
	var b strings.Builder
	for _, item := range items {
		star := " "
		if item.IsFavorite {
			star = "*"
		}
		title := fitText(item.Title, 40)
		if item.Failed() {
			title = errorStyle.Render("<cannot decrypt>")
		}
		fmt.Fprintf(&b, "%s %-9s %s  %s\n", star, item.Type, title, helpStyle.Render(item.ID))
	}
	return renderPage(fmt.Sprintf("VAULT (%d)", len(items)), b.String())
}

// RenderItem shows every decrypted field of one item.
func RenderItem(item models.DecryptedItem) string {
	if item.Failed() {
		return renderPage("ITEM "+item.ID, errorStyle.Render(HumanizeError(item.Err)))
	}

	rows := [][2]string{{"title", item.Title}, {"type", string(item.Type)}}
	switch p := item.Payload.(type) {
	case models.PasswordData:
		rows = append(rows, [2]string{"username", p.Username}, [2]string{"password", secretStyle.Render(p.Password)})
		if p.TOTP != "" {
			rows = append(rows, [2]string{"totp", p.TOTP})
		}
	case models.NoteData:
		rows = append(rows, [2]string{"content", p.Content})
	case models.CardData:
		rows = append(rows,
			[2]string{"holder", p.CardholderName},
			[2]string{"number", secretStyle.Render(p.Number)},
			[2]string{"expires", p.ExpMonth + "/" + p.ExpYear},
			[2]string{"code", secretStyle.Render(p.Code)},
		)
	case models.IdentityData:
		rows = append(rows,
			[2]string{"name", strings.TrimSpace(p.FirstName + " " + p.LastName)},
			[2]string{"email", valueOrDash(p.Email)},
			[2]string{"phone", valueOrDash(p.Phone)},
		)
	}
	rows = append(rows, [2]string{"url", valueOrDash(item.URL)}, [2]string{"notes", valueOrDash(item.Notes)})

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(row[0]), row[1]))
	}
	return renderPage("ITEM "+item.ID, strings.Join(lines, "\n"))
}

// RenderGenerated shows a generated password with its strength rating.
func RenderGenerated(resp models.GeneratePasswordResponse) string {
	var b strings.Builder
	b.WriteString(boxStyle.Render(secretStyle.Render(resp.Password)))
	fmt.Fprintf(&b, "\nstrength: %d/100\n", resp.Strength.Score)
	for _, hint := range resp.Strength.Feedback {
		b.WriteString(helpStyle.Render("- " + hint))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderError formats a command failure.
func RenderError(err error) string {
	return errorStyle.Render("error: "+HumanizeError(err)) + "\n"
}

func valueOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func fitText(v string, max int) string {
	r := []rune(v)
	if len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
