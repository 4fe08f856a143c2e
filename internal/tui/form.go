package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/wishlist/internal/model"
	"github.com/Makepad-fr/wishlist/internal/money"
)

const (
	fieldType = iota
	fieldName
	fieldURL
	fieldPrice
	fieldCurrency
	fieldImage
	fieldAutoFetch // checkbox, not a text input
	fieldCount
)

var fieldLabels = [...]string{
	fieldType:     "Category",
	fieldName:     "Name",
	fieldURL:      "URL",
	fieldPrice:    "Price",
	fieldCurrency: "Currency",
	fieldImage:    "Image file",
}

// addForm is the add-item modal content.
type addForm struct {
	inputs    []textinput.Model
	autoFetch bool
	focus     int
	err       string
}

func newAddForm() addForm {
	placeholders := [...]string{
		fieldType:     "Book, Tech, Clothing...",
		fieldName:     "What do you want?",
		fieldURL:      "https://... (optional)",
		fieldPrice:    "0.00 (optional)",
		fieldCurrency: strings.Join(money.Currencies, " / "),
		fieldImage:    "/path/to/photo.jpg (optional)",
	}
	f := addForm{inputs: make([]textinput.Model, fieldAutoFetch), autoFetch: true}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 500
		ti.Width = 40
		f.inputs[i] = ti
	}
	f.inputs[fieldType].CharLimit = 100
	f.inputs[fieldName].CharLimit = 200
	f.inputs[fieldCurrency].CharLimit = 3
	f.inputs[fieldCurrency].SetValue(money.DefaultCurrency)
	f.inputs[fieldType].Focus()
	return f
}

func (f *addForm) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

// update handles a key while the form is open. submit is true when the
// user asked to save.
func (f addForm) update(msg tea.KeyMsg) (addForm, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "down":
		return f, f.setFocus(f.focus + 1), false
	case "shift+tab", "up":
		return f, f.setFocus(f.focus - 1), false
	case "ctrl+s":
		return f, nil, true
	case "enter":
		if f.focus == fieldAutoFetch {
			return f, nil, true
		}
		return f, f.setFocus(f.focus + 1), false
	case " ":
		if f.focus == fieldAutoFetch {
			f.autoFetch = !f.autoFetch
			return f, nil, false
		}
	}
	if f.focus == fieldAutoFetch {
		return f, nil, false
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.err = ""
	return f, cmd, false
}

func (f addForm) value(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }

// item reads the form and validates it. A blank currency becomes the
// default so the request always carries one.
func (f addForm) item() (model.NewItem, error) {
	in := model.NewItem{
		Type:           f.value(fieldType),
		Name:           f.value(fieldName),
		URL:            f.value(fieldURL),
		Price:          f.value(fieldPrice),
		Currency:       f.value(fieldCurrency),
		AutoFetchImage: f.autoFetch,
		ImageFile:      f.value(fieldImage),
	}.Normalize()
	if in.Currency == "" {
		in.Currency = money.DefaultCurrency
	}
	return in, in.Validate()
}

func (f addForm) view() string {
	var b strings.Builder
	b.WriteString(modalTitleStyle.Render("Add Item"))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			label = focusStyle.Render(label)
		}
		b.WriteString(label + "\n" + in.View() + "\n")
	}
	box := "[ ]"
	if f.autoFetch {
		box = "[x]"
	}
	line := box + " Fetch image from URL"
	if f.focus == fieldAutoFetch {
		line = focusStyle.Render(line)
	}
	b.WriteString(line + "\n")
	if f.err != "" {
		b.WriteString("\n" + errorStyle.Render("✖ "+f.err) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab next · space toggle · ctrl+s save · esc cancel"))
	return lipgloss.NewStyle().Width(46).Render(b.String())
}
