package auth

import (
	"fmt"
	"io"
	"strings"
)

// ShowAPIKeyGuide writes instructions for obtaining a Pexels API key
func ShowAPIKeyGuide(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "PEXELS API KEY")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "1. Sign in at https://www.pexels.com")
	fmt.Fprintln(w, "2. Open https://www.pexels.com/api/new/ and request a key")
	fmt.Fprintln(w, "3. Copy the key shown on https://www.pexels.com/api/")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Then either:")
	fmt.Fprintln(w, "   pexelsearch auth login            (stores it in the system keychain)")
	fmt.Fprintf(w, "   export %s=<your key>     (for CI and containers)\n", APIKeyEnv)
	fmt.Fprintln(w)
}
