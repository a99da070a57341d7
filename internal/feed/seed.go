package feed

import "github.com/fiboy83/vibesphere--sub000/internal/domain"

// Seed returns the feed shown when the shared slot is empty or unreadable.
// A fresh copy is built on every call.
func Seed() []*domain.Post {
	original := &domain.Post{
		ID:           3,
		AuthorHandle: "satoshi_vibes",
		AuthorName:   "Satoshi Vibes",
		AuthorAvatar: "https://api.dicebear.com/7.x/identicon/svg?seed=satoshi",
		CreatedAt:    "5h",
		Body:         "Decentralized identity is the new social graph. Your handle, your keys, your vibe.",
		Kind:         domain.KindArticle,
		Counts:       domain.Counts{Comments: 2, Reposts: 11, Likes: 96},
		Comments: []*domain.Post{
			{
				ID:           31,
				AuthorHandle: "opn_builder",
				AuthorName:   "OPN Builder",
				AuthorAvatar: "https://api.dicebear.com/7.x/identicon/svg?seed=builder",
				CreatedAt:    "4h",
				Body:         "Minted mine on testnet already.",
				Kind:         domain.KindText,
				Counts:       domain.Counts{Comments: 1, Likes: 3},
				Comments: []*domain.Post{
					{
						ID:           311,
						AuthorHandle: "satoshi_vibes",
						AuthorName:   "Satoshi Vibes",
						AuthorAvatar: "https://api.dicebear.com/7.x/identicon/svg?seed=satoshi",
						CreatedAt:    "4h",
						Body:         "Welcome to the nexus.",
						Kind:         domain.KindText,
						Comments:     []*domain.Post{},
					},
				},
			},
		},
	}

	return []*domain.Post{
		{
			ID:           1,
			AuthorHandle: "nexus_core",
			AuthorName:   "OPN Nexus",
			AuthorAvatar: "https://api.dicebear.com/7.x/identicon/svg?seed=nexus",
			CreatedAt:    "2m",
			Body:         "gm vibesphere. The nexus is live on testnet, claim your handle and start casting.",
			Kind:         domain.KindText,
			Counts:       domain.Counts{Comments: 4, Reposts: 7, Likes: 42},
			Comments:     []*domain.Post{},
		},
		{
			ID:           2,
			AuthorHandle: "pixel_monk",
			AuthorName:   "Pixel Monk",
			AuthorAvatar: "https://api.dicebear.com/7.x/identicon/svg?seed=monk",
			CreatedAt:    "1h",
			Body:         "Sunset over the validator farm.",
			Kind:         domain.KindMedia,
			Media: &domain.Media{
				URL:  "https://images.unsplash.com/photo-1500530855697-b586d89ba3ee",
				Kind: domain.MediaImage,
			},
			Counts:   domain.Counts{Comments: 3, Reposts: 5, Likes: 28},
			Comments: []*domain.Post{},
		},
		original,
		{
			ID:           4,
			AuthorHandle: "defi_dreamer",
			AuthorName:   "DeFi Dreamer",
			AuthorAvatar: "https://api.dicebear.com/7.x/identicon/svg?seed=dreamer",
			CreatedAt:    "6h",
			Kind:         domain.KindRepost,
			Counts:       domain.Counts{Likes: 4},
			Comments:     []*domain.Post{},
			Quoted: &domain.Post{
				ID:           41,
				AuthorHandle: "gas_oracle",
				AuthorName:   "Gas Oracle",
				AuthorAvatar: "https://api.dicebear.com/7.x/identicon/svg?seed=oracle",
				CreatedAt:    "8h",
				Body:         "Testnet gas is basically free this week. Go wild.",
				Kind:         domain.KindText,
				Counts:       domain.Counts{Reposts: 1, Likes: 17},
				Comments:     []*domain.Post{},
			},
		},
	}
}
