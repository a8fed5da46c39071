package tag

// Kind 标签种类
// 功能：所有实体族的标签统一编号，常量名以所属实体族为前缀
// 说明：标签名在实体族内唯一，不同实体族可以同名（如Fixed）
type Kind int

// 产品标签
const (
	ProductService Kind = iota
	ProductConsumable
	ProductFixed
	ProductNonPhysical
	ProductPerishable
	ProductStorage
	ProductCurrency
	ProductFuel
	ProductSeed
	ProductOre
	ProductHousing
	ProductAttribute

	// 工艺标签
	ProcessCrop
	ProcessMine
	ProcessExtractor
	ProcessTap
	ProcessRefiner
	ProcessSorter
	ProcessScrapping
	ProcessScrubber
	ProcessHusbandry
	ProcessConsumption
	ProcessMaintenance
	ProcessUse
	ProcessLabor

	// 工艺输入输出部件标签
	ProductionOptional
	ProductionFixed
	ProductionInvestment
	ProductionPollutant
	ProductionChance
	ProductionOffset
	ProductionFailure
	ProductionConsumed
	ProductionDivisionInput
	ProductionDivisionCapital
	ProductionOptionalInvestment

	// 文化标签
	CultureBioPreference
	CultureXenophobic
	CultureXenophilic
	CulturePious
	CultureSedentary
	CultureNomadic
	CultureCraft
	CultureTaboo
	CultureDesire
	CultureHomeland

	// 物种标签
	SpeciesNeed
	SpeciesHabitat
	SpeciesLifespan
	SpeciesFertility
	SpeciesSapient
	SpeciesAquatic
	SpeciesNocturnal
	SpeciesDiet
	SpeciesPredator
	SpeciesDefaultCulture

	kindCount
)

// kindDef 标签定义表项
type kindDef struct {
	family    Family
	name      string
	signature Signature
}

func sig(types ...ParameterType) Signature { return types }

// kindDefs 标签定义表，每个Kind必须有且仅有一项
var kindDefs = map[Kind]kindDef{
	ProductService:     {FamilyProduct, "Service", sig()},
	ProductConsumable:  {FamilyProduct, "Consumable", sig()},
	ProductFixed:       {FamilyProduct, "Fixed", sig()},
	ProductNonPhysical: {FamilyProduct, "NonPhysical", sig()},
	ProductPerishable:  {FamilyProduct, "Perishable", sig(Integer)},
	ProductStorage:     {FamilyProduct, "Storage", sig(Word, Decimal)},
	ProductCurrency:    {FamilyProduct, "Currency", sig(Decimal)},
	ProductFuel:        {FamilyProduct, "Fuel", sig(Decimal)},
	ProductSeed:        {FamilyProduct, "Seed", sig(Product)},
	ProductOre:         {FamilyProduct, "Ore", sig(Product)},
	ProductHousing:     {FamilyProduct, "Housing", sig(Integer)},
	ProductAttribute:   {FamilyProduct, "Attribute", sig(Word, Any)},

	ProcessCrop:        {FamilyProcess, "Crop", sig(Product, Integer)},
	ProcessMine:        {FamilyProcess, "Mine", sig(Product)},
	ProcessExtractor:   {FamilyProcess, "Extractor", sig(Product)},
	ProcessTap:         {FamilyProcess, "Tap", sig(Product)},
	ProcessRefiner:     {FamilyProcess, "Refiner", sig(Product)},
	ProcessSorter:      {FamilyProcess, "Sorter", sig(Integer)},
	ProcessScrapping:   {FamilyProcess, "Scrapping", sig(Product)},
	ProcessScrubber:    {FamilyProcess, "Scrubber", sig(Product)},
	ProcessHusbandry:   {FamilyProcess, "Husbandry", sig(Species, Integer)},
	ProcessConsumption: {FamilyProcess, "Consumption", sig(Want)},
	ProcessMaintenance: {FamilyProcess, "Maintenance", sig(Want)},
	ProcessUse:         {FamilyProcess, "Use", sig(Want)},
	ProcessLabor:       {FamilyProcess, "Labor", sig(Job, Decimal)},

	ProductionOptional:           {FamilyProduction, "Optional", sig(Decimal)},
	ProductionFixed:              {FamilyProduction, "Fixed", sig()},
	ProductionInvestment:         {FamilyProduction, "Investment", sig()},
	ProductionPollutant:          {FamilyProduction, "Pollutant", sig()},
	ProductionChance:             {FamilyProduction, "Chance", sig(Character, Integer)},
	ProductionOffset:             {FamilyProduction, "Offset", sig(Integer)},
	ProductionFailure:            {FamilyProduction, "Failure", sig()},
	ProductionConsumed:           {FamilyProduction, "Consumed", sig()},
	ProductionDivisionInput:      {FamilyProduction, "DivisionInput", sig()},
	ProductionDivisionCapital:    {FamilyProduction, "DivisionCapital", sig()},
	ProductionOptionalInvestment: {FamilyProduction, "OptionalInvestment", sig(Decimal)},

	CultureBioPreference: {FamilyCulture, "BioPreference", sig(Species, Decimal)},
	CultureXenophobic:    {FamilyCulture, "Xenophobic", sig()},
	CultureXenophilic:    {FamilyCulture, "Xenophilic", sig()},
	CulturePious:         {FamilyCulture, "Pious", sig(Decimal)},
	CultureSedentary:     {FamilyCulture, "Sedentary", sig()},
	CultureNomadic:       {FamilyCulture, "Nomadic", sig()},
	CultureCraft:         {FamilyCulture, "Craft", sig(Job)},
	CultureTaboo:         {FamilyCulture, "Taboo", sig(Product)},
	CultureDesire:        {FamilyCulture, "Desire", sig(Want, Decimal)},
	CultureHomeland:      {FamilyCulture, "Homeland", sig(Word)},

	SpeciesNeed:           {FamilySpecies, "Need", sig(Want, Decimal)},
	SpeciesHabitat:        {FamilySpecies, "Habitat", sig(Word)},
	SpeciesLifespan:       {FamilySpecies, "Lifespan", sig(Integer)},
	SpeciesFertility:      {FamilySpecies, "Fertility", sig(Decimal)},
	SpeciesSapient:        {FamilySpecies, "Sapient", sig()},
	SpeciesAquatic:        {FamilySpecies, "Aquatic", sig()},
	SpeciesNocturnal:      {FamilySpecies, "Nocturnal", sig()},
	SpeciesDiet:           {FamilySpecies, "Diet", sig(Word)},
	SpeciesPredator:       {FamilySpecies, "Predator", sig(Species)},
	SpeciesDefaultCulture: {FamilySpecies, "DefaultCulture", sig(Culture)},
}
