package models

type AssetType string

const (
	AssetTypeReturnable    AssetType = "RETURNABLE"
	AssetTypeNonReturnable AssetType = "NON_RETURNABLE"
)

var assetTypeHumanName = map[AssetType]string{
	AssetTypeReturnable:    "Returnable",
	AssetTypeNonReturnable: "Non-returnable",
}

func (t AssetType) ToHuman() string {
	if human, exist := assetTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t AssetType) IsValid() bool {
	_, exist := assetTypeHumanName[t]
	return exist
}
