// Package manifest patches generated AndroidManifest.xml files so a locally
// built test application can reach a loopback server over plaintext HTTP.
package manifest

import "github.com/portable-homeserver/manifest-patch/ir"

const (
	// AndroidNS is the vendor namespace URI used by manifest attributes.
	AndroidNS = "http://schemas.android.com/apk/res/android"

	PermissionInternet           = "android.permission.INTERNET"
	PermissionAccessNetworkState = "android.permission.ACCESS_NETWORK_STATE"

	AttrUsesCleartextTraffic  = "usesCleartextTraffic"
	AttrNetworkSecurityConfig = "networkSecurityConfig"

	// NetworkSecurityConfigRef is the resource reference written to
	// android:networkSecurityConfig.
	NetworkSecurityConfigRef = "@xml/network_security_config"
)

// AndroidName qualifies local with the android namespace.
func AndroidName(local string) ir.Name {
	return ir.Name{Space: AndroidNS, Local: local}
}

// Namespaces returns the URI-to-prefix mapping manifests are encoded with.
func Namespaces() map[string]string {
	return map[string]string{AndroidNS: "android"}
}
