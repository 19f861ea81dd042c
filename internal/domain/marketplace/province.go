package marketplace

// ProvinceAliasMap maps a standard province name to its lowercase aliases.
// It is supplied by the caller per parse call and never mutated by the engine.
type ProvinceAliasMap map[string][]string

// standardProvinces holds the 77 standard Thai province names
var standardProvinces = []string{
	"กรุงเทพมหานคร",
	"กระบี่",
	"กาญจนบุรี",
	"กาฬสินธุ์",
	"กำแพงเพชร",
	"ขอนแก่น",
	"จันทบุรี",
	"ฉะเชิงเทรา",
	"ชลบุรี",
	"ชัยนาท",
	"ชัยภูมิ",
	"ชุมพร",
	"เชียงราย",
	"เชียงใหม่",
	"ตรัง",
	"ตราด",
	"ตาก",
	"นครนายก",
	"นครปฐม",
	"นครพนม",
	"นครราชสีมา",
	"นครศรีธรรมราช",
	"นครสวรรค์",
	"นนทบุรี",
	"นราธิวาส",
	"น่าน",
	"บึงกาฬ",
	"บุรีรัมย์",
	"ปทุมธานี",
	"ประจวบคีรีขันธ์",
	"ปราจีนบุรี",
	"ปัตตานี",
	"พระนครศรีอยุธยา",
	"พะเยา",
	"พังงา",
	"พัทลุง",
	"พิจิตร",
	"พิษณุโลก",
	"เพชรบุรี",
	"เพชรบูรณ์",
	"แพร่",
	"ภูเก็ต",
	"มหาสารคาม",
	"มุกดาหาร",
	"แม่ฮ่องสอน",
	"ยโสธร",
	"ยะลา",
	"ร้อยเอ็ด",
	"ระนอง",
	"ระยอง",
	"ราชบุรี",
	"ลพบุรี",
	"ลำปาง",
	"ลำพูน",
	"เลย",
	"ศรีสะเกษ",
	"สกลนคร",
	"สงขลา",
	"สตูล",
	"สมุทรปราการ",
	"สมุทรสงคราม",
	"สมุทรสาคร",
	"สระแก้ว",
	"สระบุรี",
	"สิงห์บุรี",
	"สุโขทัย",
	"สุพรรณบุรี",
	"สุราษฎร์ธานี",
	"สุรินทร์",
	"หนองคาย",
	"หนองบัวลำภู",
	"อ่างทอง",
	"อำนาจเจริญ",
	"อุดรธานี",
	"อุตรดิตถ์",
	"อุทัยธานี",
	"อุบลราชธานี",
}

var standardProvinceSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(standardProvinces))
	for _, name := range standardProvinces {
		set[name] = struct{}{}
	}
	return set
}()

// StandardProvinces returns a copy of the 77 standard province names
func StandardProvinces() []string {
	out := make([]string, len(standardProvinces))
	copy(out, standardProvinces)
	return out
}

// IsStandardProvince returns true if name is one of the standard province names
func IsStandardProvince(name string) bool {
	_, ok := standardProvinceSet[name]
	return ok
}
