package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"log"
	"os"

	"python-arcade/internal/resources"
	"python-arcade/internal/server"
	"python-arcade/internal/store"
)

const (
	defaultAddr = ":2222"
	hostKeyPath = "host_key"
	dataPath    = "assets/python.data"
	dbPath      = "python.db"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	addr := flag.String("addr", defaultAddr, "listen address")
	hostKey := flag.String("host-key", hostKeyPath, "SSH host key file, generated when missing")
	data := flag.String("data", dataPath, "asset blob")
	layout := flag.String("layout", "", "asset layout JSON (default: built-in offsets)")
	db := flag.String("db", dbPath, "score database, empty for in-memory scores")
	flag.Parse()

	if port := os.Getenv("PORT"); port != "" {
		*addr = ":" + port
	}
	if v := os.Getenv("PYTHON_DATA"); v != "" {
		*data = v
	}
	if v, ok := os.LookupEnv("PYTHON_DB"); ok {
		*db = v
	}

	// Generate host key if it doesn't exist
	if err := ensureHostKey(*hostKey); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	set := resources.Load(*data, *layout)
	res := server.Resources{Assets: set.Assets, Atlas: set.Atlas, Bank: set.Bank}

	if *db != "" {
		scores, err := store.Open(*db)
		if err != nil {
			log.Fatalf("Score database error: %v", err)
		}
		defer scores.Close()
		res.Scores = scores
		log.Printf("Scores stored in %s", *db)
	}

	// Start SSH server (blocks)
	sshServer := server.NewSSHServer(*addr, *hostKey, res)
	log.Printf("Starting Python, connect with: ssh -t -p %s YourName@localhost", (*addr)[1:])
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
