// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package message

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// promptTmpl is the instruction sent to the text-generation model. The roles
// clause is chosen by RenderPrompt before execution.
var promptTmpl = template.Must(template.New("airdrop").Parse(`You are the official AI for Irys XYZ, a cutting-edge web3 project. Your tone is futuristic, encouraging, and slightly mysterious.

A user has just checked their potential airdrop eligibility and their calculated value is {{.Value}} IRYS tokens. {{.RoleInfo}}

Generate a short, exciting message (2-3 sentences) for them. Congratulate them on their eligibility and potential airdrop. If they listed Discord roles, acknowledge their contribution to the community. Do not repeat the token amount.
`))

const genericRoleInfo = "They are a valued member of our community."

// roleInfo returns the sentence describing the user's community standing.
// The raw roles string is quoted as typed, not the parsed list.
func roleInfo(roles string) string {
	if strings.TrimSpace(roles) == "" {
		return genericRoleInfo
	}
	return fmt.Sprintf(`They hold key roles in our Discord, such as: "%s".`, roles)
}

// RenderPrompt builds the instruction for an allocation value and raw roles string.
func RenderPrompt(value int, roles string) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Value    int
		RoleInfo string
	}{Value: value, RoleInfo: roleInfo(roles)}
	if err := promptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
