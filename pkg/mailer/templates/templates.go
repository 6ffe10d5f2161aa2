package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Render produces subject, text, and HTML bodies for a named template.
var tmpl = template.Must(template.New("emails").Parse(`
{{define "welcome_html"}}
<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Welcome to Recipe Hub</h2>
    <p>Hi {{.Email}},</p>
    <p>Your account is ready. Browse the collection, add your own recipes,
    and let the recipe generator do the heavy lifting when inspiration runs dry.</p>
    <p>Happy cooking!</p>
  </body>
</html>
{{end}}
`))

func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case "welcome":
		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, "welcome_html", data); err != nil {
			return "", "", "", err
		}
		text = fmt.Sprintf("Welcome to Recipe Hub, %v! Your account is ready.", data["Email"])
		return "Welcome to Recipe Hub", text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
