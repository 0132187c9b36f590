package catalog

// defaultItems is the built-in catalog. IDs are unique; base values are dollars.
var defaultItems = []Item{
	// Jewelry
	{ID: "gold_ring_14k", Name: "14k Gold Ring", Category: CategoryJewelry, BaseValue: 450, Condition: ConditionGood, Description: "Plain 14 karat gold band, light scratches"},
	{ID: "diamond_earrings", Name: "Diamond Stud Earrings", Category: CategoryJewelry, BaseValue: 1200, Condition: ConditionExcellent, Description: "Half-carat total weight studs in white gold"},
	{ID: "silver_necklace", Name: "Sterling Silver Necklace", Category: CategoryJewelry, BaseValue: 120, Condition: ConditionFair, Description: "Rope chain, slightly tarnished clasp"},
	{ID: "pearl_bracelet", Name: "Pearl Bracelet", Category: CategoryJewelry, BaseValue: 300, Condition: ConditionGood, Description: "Freshwater pearls on a silk strand"},
	{ID: "engagement_ring", Name: "Engagement Ring", Category: CategoryJewelry, BaseValue: 2500, Condition: ConditionExcellent, Description: "One carat solitaire in platinum setting"},
	{ID: "gold_chain_18k", Name: "18k Gold Chain", Category: CategoryJewelry, BaseValue: 900, Condition: ConditionGood, Description: "Cuban link chain, 22 inches"},
	{ID: "ruby_pendant", Name: "Ruby Pendant", Category: CategoryJewelry, BaseValue: 650, Condition: ConditionFair, Description: "Oval ruby on a thin gold chain"},
	{ID: "class_ring", Name: "High School Class Ring", Category: CategoryJewelry, BaseValue: 150, Condition: ConditionPoor, Description: "10k gold, engraved initials, worn stone"},
	{ID: "cufflinks_silver", Name: "Silver Cufflinks", Category: CategoryJewelry, BaseValue: 80, Condition: ConditionGood, Description: "Engraved sterling cufflinks in original box"},

	// Electronics
	{ID: "laptop_gaming", Name: "Gaming Laptop", Category: CategoryElectronics, BaseValue: 1400, Condition: ConditionGood, Description: "15 inch laptop with dedicated graphics, charger included"},
	{ID: "smartphone_flagship", Name: "Flagship Smartphone", Category: CategoryElectronics, BaseValue: 900, Condition: ConditionExcellent, Description: "Last year's model, unlocked, no cracks"},
	{ID: "tablet_10in", Name: "10-inch Tablet", Category: CategoryElectronics, BaseValue: 400, Condition: ConditionFair, Description: "Works fine, small dent on the corner"},
	{ID: "game_console", Name: "Game Console", Category: CategoryElectronics, BaseValue: 450, Condition: ConditionGood, Description: "Current generation console with one controller"},
	{ID: "retro_console", Name: "Retro Game Console", Category: CategoryElectronics, BaseValue: 180, Condition: ConditionFair, Description: "8-bit console with two games, yellowed case"},
	{ID: "flat_tv_55", Name: "55-inch Television", Category: CategoryElectronics, BaseValue: 600, Condition: ConditionGood, Description: "4K smart TV, remote included"},
	{ID: "headphones_wireless", Name: "Wireless Headphones", Category: CategoryElectronics, BaseValue: 300, Condition: ConditionExcellent, Description: "Noise cancelling over-ear headphones with case"},
	{ID: "smartwatch", Name: "Smartwatch", Category: CategoryElectronics, BaseValue: 350, Condition: ConditionGood, Description: "Fitness smartwatch, spare band"},
	{ID: "desktop_pc", Name: "Desktop PC", Category: CategoryElectronics, BaseValue: 1000, Condition: ConditionFair, Description: "Tower PC, a few years old, no monitor"},
	{ID: "bluetooth_speaker", Name: "Bluetooth Speaker", Category: CategoryElectronics, BaseValue: 120, Condition: ConditionGood, Description: "Waterproof portable speaker"},
	{ID: "vr_headset", Name: "VR Headset", Category: CategoryElectronics, BaseValue: 500, Condition: ConditionGood, Description: "Standalone headset with both controllers"},
	{ID: "e_reader", Name: "E-Reader", Category: CategoryElectronics, BaseValue: 140, Condition: ConditionExcellent, Description: "Backlit e-ink reader with cover"},

	// Tools
	{ID: "cordless_drill", Name: "Cordless Drill", Category: CategoryTools, BaseValue: 180, Condition: ConditionGood, Description: "18V drill with two batteries"},
	{ID: "circular_saw", Name: "Circular Saw", Category: CategoryTools, BaseValue: 150, Condition: ConditionFair, Description: "7-1/4 inch corded saw, blade needs replacing"},
	{ID: "mechanics_toolset", Name: "Mechanic's Tool Set", Category: CategoryTools, BaseValue: 350, Condition: ConditionGood, Description: "200-piece socket and wrench set in case"},
	{ID: "air_compressor", Name: "Air Compressor", Category: CategoryTools, BaseValue: 250, Condition: ConditionFair, Description: "6 gallon pancake compressor"},
	{ID: "table_saw", Name: "Table Saw", Category: CategoryTools, BaseValue: 600, Condition: ConditionGood, Description: "Jobsite table saw with folding stand"},
	{ID: "welder_mig", Name: "MIG Welder", Category: CategoryTools, BaseValue: 700, Condition: ConditionGood, Description: "120V flux-core and MIG welder"},
	{ID: "chainsaw", Name: "Chainsaw", Category: CategoryTools, BaseValue: 320, Condition: ConditionFair, Description: "Gas chainsaw with 18 inch bar"},
	{ID: "impact_driver", Name: "Impact Driver", Category: CategoryTools, BaseValue: 160, Condition: ConditionExcellent, Description: "Brushless impact driver, barely used"},
	{ID: "laser_level", Name: "Laser Level", Category: CategoryTools, BaseValue: 200, Condition: ConditionGood, Description: "Self-leveling cross-line laser with tripod"},

	// Musical instruments
	{ID: "electric_guitar", Name: "Electric Guitar", Category: CategoryMusic, BaseValue: 800, Condition: ConditionGood, Description: "Solid body guitar, sunburst finish, gig bag"},
	{ID: "acoustic_guitar", Name: "Acoustic Guitar", Category: CategoryMusic, BaseValue: 450, Condition: ConditionFair, Description: "Dreadnought acoustic, pick guard wear"},
	{ID: "bass_guitar", Name: "Bass Guitar", Category: CategoryMusic, BaseValue: 600, Condition: ConditionGood, Description: "Four-string bass with new strings"},
	{ID: "keyboard_88", Name: "Digital Piano", Category: CategoryMusic, BaseValue: 700, Condition: ConditionExcellent, Description: "88 weighted keys with sustain pedal"},
	{ID: "trumpet", Name: "Trumpet", Category: CategoryMusic, BaseValue: 500, Condition: ConditionFair, Description: "Student trumpet, valves stick slightly"},
	{ID: "violin", Name: "Violin", Category: CategoryMusic, BaseValue: 900, Condition: ConditionGood, Description: "Full-size violin with bow and hard case"},
	{ID: "drum_kit", Name: "Drum Kit", Category: CategoryMusic, BaseValue: 1100, Condition: ConditionFair, Description: "Five-piece kit with cymbals"},
	{ID: "guitar_amp", Name: "Guitar Amplifier", Category: CategoryMusic, BaseValue: 400, Condition: ConditionGood, Description: "50 watt tube combo amp"},
	{ID: "saxophone", Name: "Alto Saxophone", Category: CategoryMusic, BaseValue: 1300, Condition: ConditionGood, Description: "Lacquered alto sax with mouthpiece"},

	// Watches
	{ID: "luxury_watch", Name: "Luxury Dive Watch", Category: CategoryWatches, BaseValue: 6000, Condition: ConditionExcellent, Description: "Swiss automatic dive watch with papers"},
	{ID: "vintage_watch", Name: "Vintage Pocket Watch", Category: CategoryWatches, BaseValue: 700, Condition: ConditionFair, Description: "Gold-filled pocket watch from the 1920s"},
	{ID: "chronograph", Name: "Chronograph Watch", Category: CategoryWatches, BaseValue: 1500, Condition: ConditionGood, Description: "Stainless steel chronograph, serviced last year"},
	{ID: "quartz_watch", Name: "Quartz Dress Watch", Category: CategoryWatches, BaseValue: 150, Condition: ConditionGood, Description: "Leather strap dress watch"},
	{ID: "field_watch", Name: "Field Watch", Category: CategoryWatches, BaseValue: 250, Condition: ConditionExcellent, Description: "Hand-wound field watch on canvas strap"},
	{ID: "gold_watch", Name: "Gold Wristwatch", Category: CategoryWatches, BaseValue: 3000, Condition: ConditionGood, Description: "18k gold case, automatic movement"},

	// Collectibles
	{ID: "baseball_card_rookie", Name: "Rookie Baseball Card", Category: CategoryCollectible, BaseValue: 400, Condition: ConditionGood, Description: "Graded rookie card in slab"},
	{ID: "comic_first_issue", Name: "First Issue Comic Book", Category: CategoryCollectible, BaseValue: 1000, Condition: ConditionFair, Description: "Key first issue, spine creases"},
	{ID: "coin_collection", Name: "Silver Coin Collection", Category: CategoryCollectible, BaseValue: 800, Condition: ConditionGood, Description: "Album of silver dimes and quarters"},
	{ID: "signed_baseball", Name: "Signed Baseball", Category: CategoryCollectible, BaseValue: 350, Condition: ConditionGood, Description: "Autographed ball with certificate"},
	{ID: "vinyl_records", Name: "Vinyl Record Collection", Category: CategoryCollectible, BaseValue: 300, Condition: ConditionFair, Description: "Forty classic rock LPs"},
	{ID: "action_figures", Name: "Vintage Action Figures", Category: CategoryCollectible, BaseValue: 250, Condition: ConditionPoor, Description: "Loose figures, missing accessories"},
	{ID: "stamp_album", Name: "Stamp Album", Category: CategoryCollectible, BaseValue: 200, Condition: ConditionGood, Description: "Worldwide stamps from the 1950s"},
	{ID: "trading_card_set", Name: "Trading Card Booster Box", Category: CategoryCollectible, BaseValue: 500, Condition: ConditionExcellent, Description: "Sealed booster box"},
	{ID: "gold_coin", Name: "Gold Bullion Coin", Category: CategoryCollectible, BaseValue: 2000, Condition: ConditionExcellent, Description: "One ounce gold coin in capsule"},

	// Sporting goods
	{ID: "golf_clubs", Name: "Golf Club Set", Category: CategorySporting, BaseValue: 700, Condition: ConditionGood, Description: "Full iron set with driver and bag"},
	{ID: "mountain_bike", Name: "Mountain Bike", Category: CategorySporting, BaseValue: 900, Condition: ConditionFair, Description: "Full suspension bike, needs a tune-up"},
	{ID: "road_bike", Name: "Road Bike", Category: CategorySporting, BaseValue: 1200, Condition: ConditionGood, Description: "Carbon frame road bike"},
	{ID: "snowboard", Name: "Snowboard", Category: CategorySporting, BaseValue: 350, Condition: ConditionGood, Description: "All-mountain board with bindings"},
	{ID: "fishing_rod", Name: "Fishing Rod and Reel", Category: CategorySporting, BaseValue: 180, Condition: ConditionExcellent, Description: "Graphite rod with spinning reel"},
	{ID: "kayak", Name: "Kayak", Category: CategorySporting, BaseValue: 600, Condition: ConditionFair, Description: "Sit-on-top kayak with paddle"},
	{ID: "weight_set", Name: "Weight Set", Category: CategorySporting, BaseValue: 300, Condition: ConditionGood, Description: "Adjustable dumbbells and bench"},
	{ID: "camping_tent", Name: "Camping Tent", Category: CategorySporting, BaseValue: 200, Condition: ConditionGood, Description: "Four-person tent with rainfly"},
	{ID: "compound_bow", Name: "Compound Bow", Category: CategorySporting, BaseValue: 500, Condition: ConditionGood, Description: "Hunting bow with sight and quiver"},

	// Cameras
	{ID: "dslr_camera", Name: "DSLR Camera", Category: CategoryCameras, BaseValue: 900, Condition: ConditionGood, Description: "Body with kit lens and battery grip"},
	{ID: "mirrorless_camera", Name: "Mirrorless Camera", Category: CategoryCameras, BaseValue: 1300, Condition: ConditionExcellent, Description: "Full-frame mirrorless body"},
	{ID: "film_camera", Name: "35mm Film Camera", Category: CategoryCameras, BaseValue: 250, Condition: ConditionFair, Description: "Manual SLR with 50mm lens"},
	{ID: "telephoto_lens", Name: "Telephoto Lens", Category: CategoryCameras, BaseValue: 1100, Condition: ConditionGood, Description: "70-200mm f/2.8 zoom lens"},
	{ID: "action_camera", Name: "Action Camera", Category: CategoryCameras, BaseValue: 300, Condition: ConditionGood, Description: "Waterproof action cam with mounts"},
	{ID: "drone", Name: "Camera Drone", Category: CategoryCameras, BaseValue: 800, Condition: ConditionGood, Description: "Foldable drone with spare batteries"},
	{ID: "instant_camera", Name: "Instant Camera", Category: CategoryCameras, BaseValue: 90, Condition: ConditionExcellent, Description: "Instant film camera, pastel blue"},

	// Art
	{ID: "oil_painting", Name: "Oil Painting", Category: CategoryArt, BaseValue: 1500, Condition: ConditionGood, Description: "Signed landscape by a regional artist"},
	{ID: "bronze_sculpture", Name: "Bronze Sculpture", Category: CategoryArt, BaseValue: 2200, Condition: ConditionGood, Description: "Small bronze horse on marble base"},
	{ID: "limited_print", Name: "Limited Edition Print", Category: CategoryArt, BaseValue: 400, Condition: ConditionExcellent, Description: "Numbered lithograph, framed"},
	{ID: "watercolor", Name: "Watercolor Painting", Category: CategoryArt, BaseValue: 300, Condition: ConditionFair, Description: "Harbor scene, faded mat"},
	{ID: "pottery_vase", Name: "Studio Pottery Vase", Category: CategoryArt, BaseValue: 250, Condition: ConditionGood, Description: "Hand-thrown glazed vase"},
	{ID: "art_glass", Name: "Art Glass Bowl", Category: CategoryArt, BaseValue: 450, Condition: ConditionExcellent, Description: "Blown glass bowl, artist signed"},

	// Antiques
	{ID: "antique_clock", Name: "Antique Mantel Clock", Category: CategoryAntiques, BaseValue: 800, Condition: ConditionFair, Description: "Wind-up mantel clock, chimes on the hour"},
	{ID: "silver_tea_set", Name: "Silver Tea Set", Category: CategoryAntiques, BaseValue: 1800, Condition: ConditionGood, Description: "Five-piece silver plated tea service"},
	{ID: "oak_chest", Name: "Oak Blanket Chest", Category: CategoryAntiques, BaseValue: 600, Condition: ConditionFair, Description: "Hand-built oak chest, iron hinges"},
	{ID: "crystal_decanter", Name: "Crystal Decanter", Category: CategoryAntiques, BaseValue: 220, Condition: ConditionGood, Description: "Lead crystal decanter with stopper"},
	{ID: "typewriter", Name: "Manual Typewriter", Category: CategoryAntiques, BaseValue: 280, Condition: ConditionFair, Description: "Portable typewriter with case"},
	{ID: "brass_compass", Name: "Brass Ship Compass", Category: CategoryAntiques, BaseValue: 350, Condition: ConditionGood, Description: "Gimballed compass in wooden box"},
	{ID: "porcelain_figurine", Name: "Porcelain Figurine", Category: CategoryAntiques, BaseValue: 180, Condition: ConditionPoor, Description: "Hand-painted figurine, chipped base"},
	{ID: "pocket_knife", Name: "Antique Pocket Knife", Category: CategoryAntiques, BaseValue: 120, Condition: ConditionGood, Description: "Stag handle folding knife"},
	{ID: "gramophone", Name: "Gramophone", Category: CategoryAntiques, BaseValue: 950, Condition: ConditionFair, Description: "Hand-crank gramophone with horn"},
}
