// Package domain routes dotted configuration domains to storage
// locations.
//
// A domain like my_mod.config.connection is matched against source
// patterns such as {module.**}.secrets, and the captured segments are
// substituted into a path pattern like ./config/{}::{**} to produce
// the file holding the domain and the mount point inside it.
//
// # Usage
//
//	r := domain.NewRegistry()
//	err := r.RegisterAll(map[string]string{
//		"{**}.connection": "./config/connection.jsonc::{**}",
//	})
//	if err != nil {
//		return err
//	}
//	fp, err := r.Resolve("my_mod.config.connection")
//	// fp.Path == "./config/connection.jsonc"
//	// fp.MountDest == []string{"my_mod", "config"}
//
// # Related Packages
//
//   - [github.com/GraiaProject/kayaku] ties resolved locations to
//     parsed documents.
package domain
