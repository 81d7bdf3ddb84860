package services

// The scaffolded documents. bug_report.md is the canonical form the
// ha_zyxel repository ships, kept byte for byte so the scaffold and the
// upstream stay interchangeable.
var defaultTemplates = []struct {
	file    string
	content string
}{
	{"bug_report.md", defaultBugReport},
	{"unsupported_device.md", defaultUnsupportedDevice},
	{"feature_request.md", defaultFeatureRequest},
}

const defaultBugReport = `---
name: Bug report / Unsupported device
about: Report a problem with the Zyxel integration or an unsupported device
title: ''
labels: bug
assignees: ''

---

**Zyxel device model**
e.g. NWA50AX, firmware V7.10(ABYW.3)

**Integration version**
e.g. 1.2.0 (see HACS or custom_components/ha_zyxel/manifest.json)

**Describe the bug**
A clear and concise description of what the bug is.

**Expected behavior**
A clear and concise description of what you expected to happen.

**To Reproduce**
Steps to reproduce the behavior.

**Screenshots**
If applicable, add screenshots of the device entities or logs.
`

const defaultUnsupportedDevice = `---
name: Unsupported device
about: Ask for support of another Zyxel access point model
title: ''
labels: bug, new-device
assignees: ''

---

**Zyxel device model**
e.g. NWA90AX Pro, firmware V7.00

**Does SSH work on the device?**
Log in over SSH and paste the output of 'show version' here.

**Command output differences**
If you can, paste the output of 'show wireless-hal station info' and 'show interface all'.
`

const defaultFeatureRequest = `---
name: Feature request
about: Suggest an idea for the Zyxel integration
title: ''
labels: enhancement
assignees: ''

---

**Is your feature request related to a problem?**
A clear and concise description of what the problem is.

**Describe the solution you'd like**
A clear and concise description of what you want to happen.

**Additional context**
Add any other context or screenshots about the feature request here.
`
