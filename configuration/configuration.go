// Copyright 2020 Coinbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package configuration

import (
	"crypto/ecdsa"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/atmosieve/carbon-api/carbon"
	"github.com/atmosieve/carbon-api/chain"
	"github.com/atmosieve/carbon-api/chain/artifacts"
)

// Mode is the setting that determines if
// the implementation is "online" or "offline".
type Mode string

const (
	// Online is when the implementation is permitted
	// to make outbound connections.
	Online Mode = "ONLINE"

	// Offline is when the implementation is not permitted
	// to make outbound connections. Minting is disabled.
	Offline Mode = "OFFLINE"

	// ModeEnv is the environment variable read
	// to determine mode.
	ModeEnv = "MODE"

	// PortEnv is the environment variable
	// read to determine the port of the API.
	PortEnv = "PORT"

	// DefaultPort is used when PortEnv is not populated.
	DefaultPort = 5001

	// ChainRPCEnv is an optional environment variable
	// used to connect to a chain JSON-RPC endpoint.
	ChainRPCEnv = "CHAIN_RPC"

	// DefaultChainRPC is the endpoint used when
	// ChainRPCEnv is not populated.
	DefaultChainRPC = "https://westend-asset-hub-eth-rpc.polkadot.io"

	// RPCHeadersEnv is an optional environment variable
	// of a comma-separated list of key:value pairs to apply
	// to the chain client as headers. When not set, defaults to []
	RPCHeadersEnv = "RPC_HEADERS"

	// ContractAddressEnv overrides DefaultContractAddress.
	ContractAddressEnv = "CONTRACT_ADDRESS"

	// DefaultContractAddress is the deployed carbon credit token.
	DefaultContractAddress = "0x906781a08765C862Ba6D6bB0baF29679bd33216F"

	// RecipientAddressEnv overrides DefaultRecipientAddress.
	RecipientAddressEnv = "RECIPIENT_ADDRESS"

	// DefaultRecipientAddress receives every minted credit.
	DefaultRecipientAddress = "0xF9755E5682fd9492A7ee19d852a8d6e6661C7663"

	// ABIPathEnv is an optional environment variable pointing
	// at the contract interface description. A relative value is
	// resolved against the working directory. When not set, the
	// default paths are tried against the working directory first
	// and then against the directory of the executable.
	ABIPathEnv = "ABI_PATH"

	// OwnerPrivateKeyEnv holds the hex encoded key of the
	// account that signs mint transactions.
	OwnerPrivateKeyEnv = "OWNER_PRIVATE_KEY"

	// MiddlewareVersion is the version of carbon-api.
	MiddlewareVersion = "0.1.0"
)

// Configuration determines how the API
// connects to the chain and what it mints.
type Configuration struct {
	Mode       Mode
	Port       int
	RPCURL     string
	RPCHeaders []*chain.HTTPHeader

	ContractAddress  common.Address
	RecipientAddress common.Address

	// ContractABI is nil when no valid interface
	// description could be loaded.
	ABIPath     string
	ContractABI *abi.ABI

	// OwnerKey and OwnerAddress are nil when
	// OwnerPrivateKeyEnv is missing or invalid.
	OwnerKey     *ecdsa.PrivateKey
	OwnerAddress *common.Address

	Systems map[string]*carbon.System
}

// MintEnabled returns true when both the contract interface
// and the owner key were loaded.
func (c *Configuration) MintEnabled() bool {
	return c.ContractABI != nil && c.OwnerKey != nil
}

// LoadConfiguration attempts to create a new Configuration
// using the ENVs in the environment. A missing contract interface
// or owner key does not fail loading, it only disables minting.
func LoadConfiguration() (*Configuration, error) {
	config := &Configuration{
		Systems: carbon.DefaultSystems(),
	}

	modeValue := Mode(strings.ToUpper(os.Getenv(ModeEnv)))
	switch modeValue {
	case Online, "":
		config.Mode = Online
	case Offline:
		config.Mode = Offline
	default:
		return nil, fmt.Errorf("%s is not a valid mode", modeValue)
	}

	config.Port = DefaultPort
	portValue := os.Getenv(PortEnv)
	if len(portValue) > 0 {
		port, err := strconv.Atoi(portValue)
		if err != nil {
			return nil, fmt.Errorf("%w: unable to parse port %s", err, portValue)
		}
		if port <= 0 {
			return nil, fmt.Errorf("%s is not a valid port", portValue)
		}
		config.Port = port
	}

	config.RPCURL = DefaultChainRPC
	if envRPCURL := os.Getenv(ChainRPCEnv); len(envRPCURL) > 0 {
		config.RPCURL = envRPCURL
	}

	envRPCHeaders := os.Getenv(RPCHeadersEnv)
	if len(envRPCHeaders) > 0 {
		headers, err := parseHeaders(envRPCHeaders)
		if err != nil {
			return nil, err
		}
		config.RPCHeaders = headers
	}

	contract, err := parseAddress(ContractAddressEnv, DefaultContractAddress)
	if err != nil {
		return nil, err
	}
	config.ContractAddress = contract

	recipient, err := parseAddress(RecipientAddressEnv, DefaultRecipientAddress)
	if err != nil {
		return nil, err
	}
	config.RecipientAddress = recipient

	config.ABIPath, config.ContractABI = loadContractABI()
	config.OwnerKey, config.OwnerAddress = loadOwnerKey()

	return config, nil
}

func parseHeaders(value string) ([]*chain.HTTPHeader, error) {
	pairs := strings.Split(value, ",")
	headers := make([]*chain.HTTPHeader, len(pairs))
	for i, pair := range pairs {
		kv := strings.SplitN(pair, ":", 2) //nolint:gomnd
		if len(kv) != 2 || len(strings.TrimSpace(kv[0])) == 0 { //nolint:gomnd
			return nil, fmt.Errorf("unable to parse %s pair %s", RPCHeadersEnv, pair)
		}

		headers[i] = &chain.HTTPHeader{
			Key:   strings.TrimSpace(kv[0]),
			Value: strings.TrimSpace(kv[1]),
		}
	}

	return headers, nil
}

func parseAddress(env string, fallback string) (common.Address, error) {
	value := os.Getenv(env)
	if len(value) == 0 {
		value = fallback
	}

	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%s is not a valid address for %s", value, env)
	}

	return common.HexToAddress(value), nil
}

// abiCandidates returns the paths tried for the contract interface
// when ABIPathEnv is not populated. exeDir may be empty.
func abiCandidates(exeDir string) []string {
	candidates := []string{artifacts.DefaultABIPath, artifacts.FallbackABIPath}
	if len(exeDir) == 0 {
		return candidates
	}

	return append(
		candidates,
		filepath.Join(exeDir, artifacts.DefaultABIPath),
		filepath.Join(exeDir, artifacts.FallbackABIPath),
	)
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}

	return filepath.Dir(exe)
}

func loadContractABI() (string, *abi.ABI) {
	candidates := abiCandidates(executableDir())
	if envPath := os.Getenv(ABIPathEnv); len(envPath) > 0 {
		candidates = []string{envPath}
	}

	path, err := artifacts.ResolveABIPath(candidates...)
	if err != nil {
		log.Printf("%s: minting disabled\n", err.Error())
		return "", nil
	}

	parsed, err := artifacts.LoadABI(path)
	if err != nil {
		log.Printf("%s: minting disabled\n", err.Error())
		return path, nil
	}

	return path, parsed
}

func loadOwnerKey() (*ecdsa.PrivateKey, *common.Address) {
	value := strings.TrimSpace(os.Getenv(OwnerPrivateKeyEnv))
	if len(value) == 0 {
		log.Printf("%s is not populated: minting disabled\n", OwnerPrivateKeyEnv)
		return nil, nil
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(value, "0x"))
	if err != nil {
		log.Printf("%s: unable to parse %s: minting disabled\n", err.Error(), OwnerPrivateKeyEnv)
		return nil, nil
	}

	address := crypto.PubkeyToAddress(key.PublicKey)
	log.Printf("loaded owner account %s\n", address.Hex())

	return key, &address
}
