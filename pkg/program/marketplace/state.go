package marketplace

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/fili8-labs/onchain/pkg/solana/binary"
)

const MarketplaceSize = (8 + // discriminator
	32 + // admin
	2 + // fee
	1 + // bump
	1 + // treasury_bump
	1 + // rewards_bump
	4 + MaxNameLength) // name

const ListingSize = (8 + // discriminator
	32 + // maker
	8 + // price
	1) // bump

var (
	MarketplaceDiscriminator = []byte{byte(AccountTypeMarketplace), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	ListingDiscriminator     = []byte{byte(AccountTypeListing), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
)

// Marketplace is the venue record. Its name is part of the seed tuple, so
// a venue cannot be renamed once created.
type Marketplace struct {
	Admin        ed25519.PublicKey
	Fee          uint16
	Bump         uint8
	TreasuryBump uint8
	RewardsBump  uint8
	Name         string
}

func (obj *Marketplace) Marshal() []byte {
	data := make([]byte, MarketplaceSize)

	var offset int
	binary.PutDiscriminator(data, MarketplaceDiscriminator, &offset)
	binary.PutKey(data, obj.Admin, &offset)
	binary.PutUint16(data, obj.Fee, &offset)
	binary.PutUint8(data, obj.Bump, &offset)
	binary.PutUint8(data, obj.TreasuryBump, &offset)
	binary.PutUint8(data, obj.RewardsBump, &offset)
	binary.PutString(data, obj.Name, &offset)

	return data[:offset]
}

func (obj *Marketplace) Unmarshal(data []byte) error {
	var offset int

	var discriminator []byte
	if !binary.GetDiscriminator(data, &discriminator, &offset) || !bytes.Equal(discriminator, MarketplaceDiscriminator) {
		return ErrInvalidAccountData
	}

	ok := binary.GetKey(data, &obj.Admin, &offset) &&
		binary.GetUint16(data, &obj.Fee, &offset) &&
		binary.GetUint8(data, &obj.Bump, &offset) &&
		binary.GetUint8(data, &obj.TreasuryBump, &offset) &&
		binary.GetUint8(data, &obj.RewardsBump, &offset) &&
		binary.GetString(data, &obj.Name, &offset)
	if !ok {
		return ErrInvalidAccountData
	}

	return nil
}

func (obj *Marketplace) String() string {
	return fmt.Sprintf(
		"Marketplace{name=%q,admin=%s,fee=%d}",
		obj.Name,
		base58.Encode(obj.Admin),
		obj.Fee,
	)
}

// Listing records one NFT offered at a fixed native price. The vault holding
// the NFT is the listing's associated token account for the NFT mint.
type Listing struct {
	Maker ed25519.PublicKey
	Price uint64
	Bump  uint8
}

func (obj *Listing) Marshal() []byte {
	data := make([]byte, ListingSize)

	var offset int
	binary.PutDiscriminator(data, ListingDiscriminator, &offset)
	binary.PutKey(data, obj.Maker, &offset)
	binary.PutUint64(data, obj.Price, &offset)
	binary.PutUint8(data, obj.Bump, &offset)

	return data
}

func (obj *Listing) Unmarshal(data []byte) error {
	if len(data) < ListingSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, ListingDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetKey(data, &obj.Maker, &offset)
	binary.GetUint64(data, &obj.Price, &offset)
	binary.GetUint8(data, &obj.Bump, &offset)

	return nil
}

func (obj *Listing) String() string {
	return fmt.Sprintf(
		"Listing{maker=%s,price=%d,bump=%d}",
		base58.Encode(obj.Maker),
		obj.Price,
		obj.Bump,
	)
}
