// Package binfile loads raw binary firmware files.
//
// A binary file has no framing and no addresses: its whole contents become a single
// block at address 0 of an image without explicit addresses.
//
//	img, err := binfile.Load("app.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d bytes\n", img.Size())
package binfile
