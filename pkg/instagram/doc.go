// Package instagram provides a client for the private Instagram API surface
// the giveaway needs: username/password login with an optional SMS two-factor
// step, resolution of a post URL to a media ID, and the paged comments feed.
//
// This package includes:
//   - A session-carrying HTTP client with bounded retry and structured logging
//   - A tagged LoginResult covering every login outcome the service reports
//   - A deterministic per-username device identity
//   - Shortcode and mention parsing for post URLs and comment text
//
// Example usage:
//
//	client := instagram.NewClient(30*time.Second, 3, 2*time.Second, nil)
//	client.SetDevice(instagram.GenerateDevice("account", ""))
//
//	result, err := client.Login("account", "password")
//	if err != nil {
//	    // rejected credentials or transport failure
//	}
//	switch result.Outcome {
//	case instagram.LoginAuthenticated:
//	    // proceed to fetch comments
//	case instagram.LoginTwoFactorRequired:
//	    // ask the operator for the SMS code, then client.TwoFactorLogin(...)
//	case instagram.LoginCheckpointRequired:
//	    // terminal: the account must be verified out-of-band
//	}
package instagram
