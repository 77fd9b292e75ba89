package usecase

const tplOTPRequested = `
<p>Hi {{.name}},</p>
<p>Your one-time login code is:</p>
<h2 style="letter-spacing:4px">{{.code}}</h2>
<p>The code expires in {{.expires_in_minutes}} minutes and can be used once.</p>
<p>If you did not request this code, you can safely ignore this email.</p>
<p>{{.company_name}} &middot; {{.support_email}} &middot; {{.year}}</p>
`

const tplUserRegistered = `
<p>Hi {{.name}},</p>
<p>Welcome to {{.company_name}}! Your account is ready.</p>
{{if .use_otp}}<p>Your account uses OTP login: request a code on the sign-in page whenever you want to log in.</p>{{end}}
<p>{{.company_name}} &middot; {{.support_email}} &middot; {{.year}}</p>
`

const tplFormSubmitted = `
<p>Hi {{.name}},</p>
<p>We received your tax filing submission (reference <strong>{{.form_id}}</strong>, PAN {{.pan}})
with {{.document_count}} document(s).</p>
<p>Our team will review it and keep you posted on the status.</p>
<p>{{.company_name}} &middot; {{.support_email}} &middot; {{.year}}</p>
`

const tplFormStatusChanged = `
<p>Hi {{.name}},</p>
<p>The status of your tax filing submission <strong>{{.form_id}}</strong> changed to
<strong>{{.status}}</strong>.</p>
<p>{{.company_name}} &middot; {{.support_email}} &middot; {{.year}}</p>
`
