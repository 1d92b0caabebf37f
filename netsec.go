package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// NetworkSecurityConfigXML is the companion resource content: cleartext
// traffic is permitted for the loopback address and localhost only.
const NetworkSecurityConfigXML = `<?xml version="1.0" encoding="utf-8"?>
<network-security-config>
    <domain-config cleartextTrafficPermitted="true">
        <domain includeSubdomains="false">127.0.0.1</domain>
        <domain includeSubdomains="false">localhost</domain>
    </domain-config>
</network-security-config>
`

// NetworkSecurityConfigPath returns the resource path relative to the
// manifest directory.
func NetworkSecurityConfigPath(dir string) string {
	return filepath.Join(dir, "res", "xml", "network_security_config.xml")
}

// WriteNetworkSecurityConfig materializes res/xml/network_security_config.xml
// next to the manifest. A file whose bytes already match is left untouched so
// repeated runs do not disturb its mtime.
func WriteNetworkSecurityConfig() Step {
	return StepFunc("write network security config", func(doc *Document) (bool, error) {
		path := NetworkSecurityConfigPath(doc.Dir())
		cur, err := os.ReadFile(path)
		switch {
		case err == nil:
			if bytes.Equal(cur, []byte(NetworkSecurityConfigXML)) {
				return false, nil
			}
		case !errors.Is(err, fs.ErrNotExist):
			return false, fmt.Errorf("reading %s: %w", path, err)
		}
		if doc.DryRun {
			return true, nil
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return false, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(NetworkSecurityConfigXML), 0o644); err != nil {
			return false, fmt.Errorf("writing %s: %w", path, err)
		}
		return true, nil
	})
}
