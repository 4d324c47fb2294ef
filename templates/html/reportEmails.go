package templates

import (
	"fmt"
	"html"
)

// RenderOfficerAssignedEmail generates the HTML for the email sent to an
// officer when a report is assigned to them.
func RenderOfficerAssignedEmail(officerName, reportTitle, reportID, status, caseURL string) string {
	safeName := html.EscapeString(officerName)
	safeTitle := html.EscapeString(reportTitle)
	safeStatus := html.EscapeString(status)

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>New Case Assignment - CrimeChain</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #0a0a0f; }
    .container { max-width: 600px; margin: 0 auto; background-color: #12121f; }
    .header { background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #e5e7eb; line-height: 1.6; font-size: 15px; }
    .content h2 { color: #fff; margin-top: 0; }
    .case-box { background: rgba(102, 126, 234, 0.1); border: 1px solid rgba(102, 126, 234, 0.3); border-radius: 12px; padding: 20px; margin: 20px 0; }
    .case-box h3 { color: #667eea; margin-top: 0; font-size: 16px; }
    .case-box p { margin: 6px 0; color: #9ca3af; font-size: 14px; }
    .cta-button { display: inline-block; background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: #fff; padding: 14px 28px; border-radius: 8px; text-decoration: none; font-weight: 700; margin-top: 20px; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid rgba(255,255,255,0.1); }
    .footer a { color: #667eea; text-decoration: none; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>New Case Assignment</h1>
    </div>
    <div class="content">
      <h2>Hi %s,</h2>
      <p>A report has been assigned to you for investigation.</p>

      <div class="case-box">
        <h3>Case Details</h3>
        <p><strong>Title:</strong> %s</p>
        <p><strong>Case ID:</strong> %s</p>
        <p><strong>Current status:</strong> %s</p>
      </div>

      <p>Please review the report and its evidence as soon as possible.</p>
      <a href="%s" class="cta-button">Open Case</a>
    </div>
    <div class="footer">
      <p>CrimeChain Report System &bull; This is an automated notification, please do not reply.</p>
    </div>
  </div>
</body>
</html>`, safeName, safeTitle, reportID, safeStatus, caseURL)
}
