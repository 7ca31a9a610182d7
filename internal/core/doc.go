// Package core assembles the client data layer: configuration, logging,
// metrics, the credential vault, the session, the protocol client, the
// media codec and the typed providers.
//
// Example Usage:
//
//	c, err := core.New(config.LoadOrDefault())
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	if _, err := c.Auth.Login(ctx, email, password); err != nil {
//	    return err
//	}
package core
