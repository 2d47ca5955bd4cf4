package applications

import (
	"fmt"
	"html"

	"github.com/deelmap/admin-backend/pkg/db/models"
)

const credentialsEmailSubject = "Your Deelmap seller account is ready"

// credentialsEmailHTML builds the approval email body. Values are escaped so
// a submitted business name cannot inject markup into the message.
func credentialsEmailHTML(app *models.SellerApplication, password, loginURL string) string {
	name := html.EscapeString(app.ContactPersonName)
	business := html.EscapeString(app.BusinessName)
	email := html.EscapeString(app.Email)

	return fmt.Sprintf(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
<h2>Welcome to Deelmap, %s!</h2>
<p>Your seller application for <strong>%s</strong> has been approved.</p>
<p>Sign in with these credentials:</p>
<table style="border-collapse:collapse;margin:16px 0">
<tr><td style="padding:4px 12px 4px 0"><strong>Email</strong></td><td>%s</td></tr>
<tr><td style="padding:4px 12px 4px 0"><strong>Password</strong></td><td><code>%s</code></td></tr>
</table>
<p><a href="%s" style="background:#1a73e8;color:#fff;padding:10px 20px;border-radius:4px;text-decoration:none">Log in to Deelmap</a></p>
<p>Please change your password after your first login.</p>
</div>`, name, business, email, html.EscapeString(password), html.EscapeString(loginURL))
}
