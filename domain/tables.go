package domain

// Table is a mongo collection name.
type Table string

const (
	TableListings          Table = "listings"
	TableListingCounters   Table = "listing_counters"
	TableOffers            Table = "offers"
	TableWinningBids       Table = "winning_bids"
	TableMarketplaceEvents Table = "marketplace_events"
	TablePayTokens         Table = "paytokens"
	TableRoyaltyConfigs    Table = "royalty_configs"
	TableAccounts          Table = "accounts"
	TableAccountNonces     Table = "account_nonces"
)
