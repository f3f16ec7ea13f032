//go:build !unix

package devicex

func systemRelease() (string, string) {
	return "", ""
}
